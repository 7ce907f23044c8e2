package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
)

// #region hash
// HashDocument computes the stable identity of a rendered document:
// sha256 over the exact output bytes, hex-encoded. Stable across
// architectures, so an index written on one machine verifies on another.
func HashDocument(doc string) string {
	sum := sha256.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}

// #endregion hash
