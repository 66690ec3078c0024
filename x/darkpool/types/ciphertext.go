package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CtWidth is the declared plaintext width of a ciphertext handle.
//
// The module validates widths (shape), never values: a handle is opaque and
// carries no information about the plaintext behind it. Width mismatches are
// the only thing order validation can and does check on encrypted fields.
type CtWidth uint8

const (
	// CtBool is an encrypted boolean (flags, comparison results).
	CtBool CtWidth = 1

	// CtUint8 is a narrow encrypted integer (order direction).
	CtUint8 CtWidth = 8

	// CtUint64 is an encrypted integer wide enough for unix timestamps.
	CtUint64 CtWidth = 64

	// CtUint128 is a wide encrypted integer for prices and sizes.
	CtUint128 CtWidth = 128
)

// Order direction plaintext domain for the CtUint8 direction field.
// The values themselves only ever exist inside ciphertexts and in trivial
// encryptions of public comparison operands.
const (
	DirectionBuy  uint64 = 1
	DirectionSell uint64 = 2
)

// Ciphertext is an opaque reference to an encrypted value held by the FHE
// coprocessor, together with its declared width.
type Ciphertext struct {
	// Handle is the coprocessor-assigned opaque reference
	Handle []byte `json:"handle"`
	// Width is the declared plaintext width
	Width CtWidth `json:"width"`
}

// IsEmpty reports whether the ciphertext has no handle.
func (c Ciphertext) IsEmpty() bool {
	return len(c.Handle) == 0
}

// Validate checks structural well-formedness against an expected width.
// It never inspects the value, only the shape.
func (c Ciphertext) Validate(expected CtWidth) error {
	if c.IsEmpty() {
		return fmt.Errorf("missing ciphertext handle")
	}
	if c.Width != expected {
		return fmt.Errorf("ciphertext width %d, expected %d", c.Width, expected)
	}
	return nil
}

// Fingerprint returns a stable store key for the handle, used by the
// access-control grant table. Handles are coprocessor-sized blobs; the
// fingerprint keeps grant keys fixed-length.
func (c Ciphertext) Fingerprint() []byte {
	sum := sha256.Sum256(c.Handle)
	return sum[:]
}

// String renders a short hex form of the handle for logs and CLI output.
func (c Ciphertext) String() string {
	if c.IsEmpty() {
		return "ct(empty)"
	}
	h := hex.EncodeToString(c.Handle)
	if len(h) > 16 {
		h = h[:16]
	}
	return fmt.Sprintf("ct(%s/%d)", h, c.Width)
}
