package api

import (
	"encoding/hex"
	"fmt"
)

// maxMatrixDice caps the probability matrix size; the computation is
// quadratic in the number of dice.
const maxMatrixDice = 64

// ValidateVerifyRequest checks a verify request and returns the first
// validation error found.
func ValidateVerifyRequest(req *VerifyRequest) error {
	if req.Max < 0 {
		return fmt.Errorf("max must be non-negative, got %d", req.Max)
	}
	if req.Key == "" {
		return fmt.Errorf("key is required")
	}
	if _, err := hex.DecodeString(req.Key); err != nil {
		return fmt.Errorf("key must be a hex string")
	}
	if req.Commitment == "" {
		return fmt.Errorf("commitment is required")
	}
	if _, err := hex.DecodeString(req.Commitment); err != nil {
		return fmt.Errorf("commitment must be a hex string")
	}
	if req.Secret < 0 || req.Secret > req.Max {
		return fmt.Errorf("secret (%d) must be in [0, %d]", req.Secret, req.Max)
	}
	if req.Counterpart != nil && (*req.Counterpart < 0 || *req.Counterpart > req.Max) {
		return fmt.Errorf("counterpart (%d) must be in [0, %d]", *req.Counterpart, req.Max)
	}
	return nil
}

// ValidateProbabilitiesRequest checks a probabilities request.
func ValidateProbabilitiesRequest(req *ProbabilitiesRequest) error {
	if len(req.Dice) == 0 {
		return fmt.Errorf("at least one die is required")
	}
	if len(req.Dice) > maxMatrixDice {
		return fmt.Errorf("too many dice (max %d)", maxMatrixDice)
	}
	for i, faces := range req.Dice {
		if len(faces) == 0 {
			return fmt.Errorf("die %d has no faces", i)
		}
	}
	return nil
}
