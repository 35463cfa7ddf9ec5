package model

import (
	"bytes"

	"github.com/holiman/uint256"
)

// MineCtx is the puzzle a miner works on for one round: a serialized header
// template whose last NonceSize bytes are the nonce slot, and optional
// overrides of the target and algorithm. A nil override means the miner's
// configured default applies.
type MineCtx struct {
	Header []byte
	Target *uint256.Int
	Algo   *Algo
}

// NewMineCtx copies header so later changes by the caller cannot leak into an
// issued context.
func NewMineCtx(header []byte, target *uint256.Int, algo *Algo) *MineCtx {
	m := &MineCtx{
		Header: append([]byte(nil), header...),
	}

	if target != nil {
		m.Target = target.Clone()
	}

	if algo != nil {
		m.Algo = algo.Ptr()
	}

	return m
}

func (m *MineCtx) Clone() *MineCtx {
	if m == nil {
		return nil
	}

	return NewMineCtx(m.Header, m.Target, m.Algo)
}

// Equal reports whether both contexts describe the same puzzle.
func (m *MineCtx) Equal(other *MineCtx) bool {
	if m == nil || other == nil {
		return m == other
	}

	if !bytes.Equal(m.Header, other.Header) {
		return false
	}

	switch {
	case m.Target == nil && other.Target == nil:
	case m.Target == nil || other.Target == nil:
		return false
	case !m.Target.Eq(other.Target):
		return false
	}

	switch {
	case m.Algo == nil && other.Algo == nil:
		return true
	case m.Algo == nil || other.Algo == nil:
		return false
	default:
		return *m.Algo == *other.Algo
	}
}

// TargetOr returns the context target, or def when the context has none.
func (m *MineCtx) TargetOr(def *uint256.Int) *uint256.Int {
	if m.Target != nil {
		return m.Target
	}

	return def
}

// AlgoOr returns the context algorithm, or def when the context has none.
func (m *MineCtx) AlgoOr(def Algo) Algo {
	if m.Algo != nil {
		return *m.Algo
	}

	return def
}

// HeaderWithNonce returns the header template with nonce patched in.
func (m *MineCtx) HeaderWithNonce(nonce uint32) []byte {
	return SetHeaderNonce(m.Header, nonce)
}
