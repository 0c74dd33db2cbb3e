package api

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/firmazk/xmlwitness/models"
	"github.com/firmazk/xmlwitness/witness"
)

// Server handles HTTP requests for witness generation
type Server struct{}

// NewServer creates a new HTTP server
func NewServer() *Server {
	return &Server{}
}

// ==== Request/Response Types ====

// WitnessRequest represents a witness generation request
type WitnessRequest struct {
	XML                string `json:"xml"`
	NullifierSeed      string `json:"nullifierSeed"`
	RevealStart        string `json:"revealStart,omitempty"`
	RevealEnd          string `json:"revealEnd,omitempty"`
	MaxInputLength     int    `json:"maxInputLength,omitempty"`
	RSAKeyBitsPerChunk int    `json:"rsaKeyBitsPerChunk,omitempty"`
	RSAKeyNumChunks    int    `json:"rsaKeyNumChunks,omitempty"`
}

// WitnessResponse represents a witness generation response
type WitnessResponse struct {
	Witness   *models.Witness `json:"witness"`
	Timestamp time.Time       `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ==== Handlers ====

// HandleHealth handles health check requests
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// HandleWitness handles witness generation requests
func (s *Server) HandleWitness(w http.ResponseWriter, r *http.Request) {
	// Parse request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request",
			"failed to read request body")
		return
	}
	defer r.Body.Close()

	var req WitnessRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json",
			fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	// Validate inputs
	if req.XML == "" || req.NullifierSeed == "" {
		respondError(w, http.StatusBadRequest, "missing_input",
			"both xml and nullifierSeed are required")
		return
	}

	seed, ok := new(big.Int).SetString(req.NullifierSeed, 10)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_seed",
			"nullifierSeed must be a decimal integer")
		return
	}

	// Generate witness
	wtn, err := witness.Generate(req.XML, models.Params{
		NullifierSeed:      seed,
		RevealStart:        req.RevealStart,
		RevealEnd:          req.RevealEnd,
		MaxInputLength:     req.MaxInputLength,
		RSAKeyBitsPerChunk: req.RSAKeyBitsPerChunk,
		RSAKeyNumChunks:    req.RSAKeyNumChunks,
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "witness_generation_failed",
			fmt.Sprintf("failed to generate witness: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, WitnessResponse{
		Witness:   wtn,
		Timestamp: time.Now(),
	})
}

// ==== Helpers ====

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}
