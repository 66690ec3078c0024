package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// FHEKeeper is the expected interface of the homomorphic-encryption
// coprocessor. The cryptographic protocol behind it is out of scope for this
// module: the coprocessor is an opaque capability that computes over
// ciphertext handles and decrypts for principals that hold a grant.
//
// All operations are synchronous value computations. Decrypt is the
// engine-only synchronous path; every Decrypt call in this module is guarded
// by an engine grant check first. User-facing decryption never calls Decrypt
// directly and goes through the two-phase ticket protocol instead, with
// VerifyPlaintext re-checking the supplied plaintext against the original
// ciphertext commitment.
type FHEKeeper interface {
	// Encrypt produces a trivial encryption of a public operand so it can be
	// combined with private values.
	Encrypt(ctx context.Context, value sdkmath.Int, width CtWidth) (Ciphertext, error)

	// Arithmetic over encrypted integers. Sub saturates at zero only when
	// composed with Select by the caller; the raw operation is exact.
	Add(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Sub(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Mul(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Min(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Max(ctx context.Context, a, b Ciphertext) (Ciphertext, error)

	// Comparisons yield boolean ciphertexts.
	Ge(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Le(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Eq(ctx context.Context, a, b Ciphertext) (Ciphertext, error)

	// Boolean algebra over boolean ciphertexts.
	And(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Or(ctx context.Context, a, b Ciphertext) (Ciphertext, error)
	Not(ctx context.Context, a Ciphertext) (Ciphertext, error)

	// Select returns ifTrue where cond holds and ifFalse elsewhere, without
	// branching: the one primitive that replaces conditional control flow
	// over secret data.
	Select(ctx context.Context, cond, ifTrue, ifFalse Ciphertext) (Ciphertext, error)

	// Decrypt synchronously opens a ciphertext. Engine-only; callers must
	// have verified the engine grant.
	Decrypt(ctx context.Context, ct Ciphertext) (sdkmath.Int, error)

	// VerifyPlaintext reports whether plaintext is consistent with the
	// ciphertext commitment, without revealing anything else.
	VerifyPlaintext(ctx context.Context, ct Ciphertext, plaintext sdkmath.Int) (bool, error)
}

// SettlementKeeper is the expected interface of the settlement provider that
// moves real value once a fill amount has crossed the decryption boundary.
// Token wrapping and transfer mechanics are external collaborators.
type SettlementKeeper interface {
	// Settle transfers fillAmount for the given order. The amount is
	// plaintext by necessity: settlement cannot move encrypted value.
	Settle(ctx context.Context, orderID uint64, owner string, poolID uint64, fillAmount sdkmath.Int) error
}
