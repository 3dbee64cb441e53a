package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
)

// loadParams reads a domain-parameter file written by the params command.
func loadParams(path string) (*dsa.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	var params dsa.Parameters
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}
	return &params, nil
}

// loadKeyPair reads a key file written by the keygen command.
func loadKeyPair(path string) (*dsa.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	var kp dsa.KeyPair
	if err := json.Unmarshal(data, &kp); err != nil {
		return nil, fmt.Errorf("failed to parse key: %w", err)
	}
	return &kp, nil
}

// writeJSON writes an indented JSON document, 0600 since key material may
// be inside.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
