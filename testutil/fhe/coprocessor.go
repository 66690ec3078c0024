package fhe

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/veilchain/veil/x/darkpool/types"
)

// Coprocessor is a plaintext-backed stand-in for the FHE coprocessor used in
// keeper tests. Every operation computes the real arithmetic on the hidden
// plaintext and mints a fresh opaque handle for the result, so test code
// observes exactly the handle-passing behavior of the production system
// while assertions can reach the underlying values through Decrypt.
type Coprocessor struct {
	mu     sync.Mutex
	next   uint64
	values map[string]entry
}

type entry struct {
	value sdkmath.Int
	width types.CtWidth
}

// NewCoprocessor returns an empty plaintext-backed coprocessor.
func NewCoprocessor() *Coprocessor {
	return &Coprocessor{values: make(map[string]entry)}
}

var _ types.FHEKeeper = (*Coprocessor)(nil)

// mint stores a value under a fresh handle.
func (c *Coprocessor) mint(value sdkmath.Int, width types.CtWidth) types.Ciphertext {
	c.next++
	seed := make([]byte, 8)
	binary.BigEndian.PutUint64(seed, c.next)
	sum := sha256.Sum256(seed)
	handle := sum[:]

	c.values[string(handle)] = entry{value: value, width: width}
	return types.Ciphertext{Handle: handle, Width: width}
}

// lookup resolves a handle or fails the way a real coprocessor rejects an
// unknown reference.
func (c *Coprocessor) lookup(ct types.Ciphertext) (entry, error) {
	e, ok := c.values[string(ct.Handle)]
	if !ok {
		return entry{}, fmt.Errorf("unknown ciphertext handle %s", ct)
	}
	return e, nil
}

// Encrypt produces a trivial encryption of a public operand.
func (c *Coprocessor) Encrypt(_ context.Context, value sdkmath.Int, width types.CtWidth) (types.Ciphertext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value.IsNil() || value.IsNegative() {
		return types.Ciphertext{}, fmt.Errorf("encrypt: value must be non-negative")
	}
	return c.mint(value, width), nil
}

func (c *Coprocessor) Add(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, a.Width, func(x, y sdkmath.Int) sdkmath.Int { return x.Add(y) })
}

func (c *Coprocessor) Sub(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, a.Width, func(x, y sdkmath.Int) sdkmath.Int { return x.Sub(y) })
}

func (c *Coprocessor) Mul(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, a.Width, func(x, y sdkmath.Int) sdkmath.Int { return x.Mul(y) })
}

func (c *Coprocessor) Min(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, a.Width, sdkmath.MinInt)
}

func (c *Coprocessor) Max(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, a.Width, sdkmath.MaxInt)
}

func (c *Coprocessor) Ge(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, types.CtBool, func(x, y sdkmath.Int) sdkmath.Int { return boolInt(x.GTE(y)) })
}

func (c *Coprocessor) Le(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, types.CtBool, func(x, y sdkmath.Int) sdkmath.Int { return boolInt(x.LTE(y)) })
}

func (c *Coprocessor) Eq(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, types.CtBool, func(x, y sdkmath.Int) sdkmath.Int { return boolInt(x.Equal(y)) })
}

func (c *Coprocessor) And(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, types.CtBool, func(x, y sdkmath.Int) sdkmath.Int {
		return boolInt(x.IsPositive() && y.IsPositive())
	})
}

func (c *Coprocessor) Or(_ context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	return c.binaryOp(a, b, types.CtBool, func(x, y sdkmath.Int) sdkmath.Int {
		return boolInt(x.IsPositive() || y.IsPositive())
	})
}

func (c *Coprocessor) Not(_ context.Context, a types.Ciphertext) (types.Ciphertext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ea, err := c.lookup(a)
	if err != nil {
		return types.Ciphertext{}, err
	}
	return c.mint(boolInt(!ea.value.IsPositive()), types.CtBool), nil
}

// Select returns ifTrue where cond holds and ifFalse elsewhere.
func (c *Coprocessor) Select(_ context.Context, cond, ifTrue, ifFalse types.Ciphertext) (types.Ciphertext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ec, err := c.lookup(cond)
	if err != nil {
		return types.Ciphertext{}, err
	}
	et, err := c.lookup(ifTrue)
	if err != nil {
		return types.Ciphertext{}, err
	}
	ef, err := c.lookup(ifFalse)
	if err != nil {
		return types.Ciphertext{}, err
	}
	if ec.value.IsPositive() {
		return c.mint(et.value, et.width), nil
	}
	return c.mint(ef.value, ef.width), nil
}

// Decrypt opens a ciphertext.
func (c *Coprocessor) Decrypt(_ context.Context, ct types.Ciphertext) (sdkmath.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.lookup(ct)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return e.value, nil
}

// VerifyPlaintext reports whether plaintext matches the hidden value.
func (c *Coprocessor) VerifyPlaintext(_ context.Context, ct types.Ciphertext, plaintext sdkmath.Int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.lookup(ct)
	if err != nil {
		return false, err
	}
	return e.value.Equal(plaintext), nil
}

// Seed installs a caller-chosen plaintext behind a fresh handle, standing in
// for client-side input encryption.
func (c *Coprocessor) Seed(value int64, width types.CtWidth) types.Ciphertext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mint(sdkmath.NewInt(value), width)
}

func (c *Coprocessor) binaryOp(a, b types.Ciphertext, width types.CtWidth, op func(x, y sdkmath.Int) sdkmath.Int) (types.Ciphertext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ea, err := c.lookup(a)
	if err != nil {
		return types.Ciphertext{}, err
	}
	eb, err := c.lookup(b)
	if err != nil {
		return types.Ciphertext{}, err
	}
	return c.mint(op(ea.value, eb.value), width), nil
}

func boolInt(b bool) sdkmath.Int {
	if b {
		return sdkmath.OneInt()
	}
	return sdkmath.ZeroInt()
}
