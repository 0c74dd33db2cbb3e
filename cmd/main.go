package main

import (
	"fmt"
	"os"
)

// xmlwitness - CLI tool and API service for turning signed XML documents
// into zero-knowledge circuit witnesses
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
