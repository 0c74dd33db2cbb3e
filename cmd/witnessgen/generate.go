package witnessgen

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/firmazk/xmlwitness/models"
	"github.com/firmazk/xmlwitness/witness"
	"github.com/spf13/cobra"
)

type generateConfig struct {
	inputPath  string
	outputPath string

	nullifierSeed  string
	revealStart    string
	revealEnd      string
	maxInputLength int
	bitsPerChunk   int
	numChunks      int
}

func NewGenerateCmd() *cobra.Command {
	cfg := &generateConfig{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a circuit witness from a signed XML document",
		Long:  `Read a signed XML document, re-verify its RSA signature, and emit the circuit witness as JSON.`,
		Example: `  # Generate a witness to stdout
  xmlwitness generate -i signed.xml --nullifier-seed 12345

  # Write to a file with a selective-disclosure window
  xmlwitness generate -i signed.xml -o witness.json \
    --nullifier-seed 12345 --reveal-start '<GivenName>' --reveal-end '</GivenName>'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.inputPath, "input", "i", "", "Signed XML document (use - for stdin)")
	cmd.Flags().StringVarP(&cfg.outputPath, "output", "o", "", "Output file for the witness JSON (default stdout)")
	cmd.Flags().StringVar(&cfg.nullifierSeed, "nullifier-seed", "", "Nullifier seed (decimal, below the BN254 scalar field modulus)")
	cmd.Flags().StringVar(&cfg.revealStart, "reveal-start", "", "Reveal window start marker")
	cmd.Flags().StringVar(&cfg.revealEnd, "reveal-end", "", "Reveal window end marker")
	cmd.Flags().IntVar(&cfg.maxInputLength, "max-input-length", models.DefaultMaxInputLength, "Circuit input capacity in bytes (multiple of 64)")
	cmd.Flags().IntVar(&cfg.bitsPerChunk, "rsa-bits-per-chunk", models.DefaultRSAKeyBitsPerChunk, "Bits per RSA limb")
	cmd.Flags().IntVar(&cfg.numChunks, "rsa-num-chunks", models.DefaultRSAKeyNumChunks, "Number of RSA limbs")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("nullifier-seed")

	return cmd
}

func runGenerate(cfg *generateConfig) error {
	seed, ok := new(big.Int).SetString(cfg.nullifierSeed, 10)
	if !ok {
		return fmt.Errorf("nullifier seed %q is not a decimal integer", cfg.nullifierSeed)
	}

	var (
		xmlBytes []byte
		err      error
	)
	if cfg.inputPath == "-" {
		xmlBytes, err = os.ReadFile("/dev/stdin")
	} else {
		xmlBytes, err = os.ReadFile(cfg.inputPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	wtn, err := witness.Generate(string(xmlBytes), models.Params{
		NullifierSeed:      seed,
		RevealStart:        cfg.revealStart,
		RevealEnd:          cfg.revealEnd,
		MaxInputLength:     cfg.maxInputLength,
		RSAKeyBitsPerChunk: cfg.bitsPerChunk,
		RSAKeyNumChunks:    cfg.numChunks,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(wtn, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode witness: %w", err)
	}
	out = append(out, '\n')

	if cfg.outputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write witness: %w", err)
	}
	fmt.Printf("[OK] Witness written to %s\n", cfg.outputPath)
	return nil
}
