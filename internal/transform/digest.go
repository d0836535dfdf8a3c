package transform

import (
	"crypto/sha256"
	"encoding/hex"
)

// OCSF fingerprint algorithm for raw_data_hash.
const (
	HashAlgorithm   = "SHA-256"
	HashAlgorithmID = 3
)

// fingerprint returns the OCSF fingerprint object for data.
func fingerprint(data []byte) map[string]any {
	sum := sha256.Sum256(data)

	return map[string]any{
		"algorithm":    HashAlgorithm,
		"algorithm_id": float64(HashAlgorithmID),
		"value":        hex.EncodeToString(sum[:]),
	}
}
