// Package scryptpow implements the scrypt proof-of-work: the scrypt digest of
// the mining template, read as a little-endian number, must not exceed the
// target. The cycle proof of the header is unused.
package scryptpow

import (
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/scrypt"
)

// Litecoin style parameters: N=1024, r=1, p=1.
const (
	costN   = 1024
	blockR  = 1
	paralP  = 1
	keySize = 32
)

var ErrAboveTarget = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "scrypt digest above target")

type Scrypt struct{}

func New() *Scrypt {
	return &Scrypt{}
}

// Digest is scrypt(header, header) read as a little-endian number.
func Digest(header []byte) (*uint256.Int, error) {
	key, err := scrypt.Key(header, header, costN, blockR, paralP, keySize)
	if err != nil {
		return nil, errors.NewProcessingError("scrypt failed", err)
	}

	return model.U256FromBytes(key), nil
}

func (s *Scrypt) Verify(header []byte, _ model.Solution, target *uint256.Int) error {
	if target == nil {
		return errors.NewInvalidArgumentError("no target to verify against")
	}

	digest, err := Digest(header)
	if err != nil {
		return err
	}

	if digest.Gt(target) {
		return ErrAboveTarget
	}

	return nil
}
