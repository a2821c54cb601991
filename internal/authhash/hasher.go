// Package authhash provides credential verification behind a pluggable
// interface. The default implementation is argon2id; a legacy checksum
// verifier is kept so records written by the old scheme still verify.
package authhash

import (
	"strconv"
	"strings"

	"github.com/alexedwards/argon2id"
)

// Hasher hashes and verifies passwords. Implementations must keep the
// encoded form self-describing so records survive parameter changes.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Argon2Hasher is the default salted, memory-hard Hasher.
type Argon2Hasher struct {
	params *argon2id.Params
}

var _ Hasher = (*Argon2Hasher)(nil)

// NewArgon2Hasher returns a Hasher with the library default parameters.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{params: argon2id.DefaultParams}
}

// Hash derives an encoded argon2id hash of password.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

// Verify reports whether password matches the encoded hash.
func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, encoded)
}

// LegacyChecksumHasher reproduces the storefront's original 32-bit
// string checksum. It is not a security primitive and exists only to
// verify credential records written by the old client.
type LegacyChecksumHasher struct{}

var _ Hasher = (LegacyChecksumHasher{})

// Hash computes the legacy checksum of password.
func (LegacyChecksumHasher) Hash(password string) (string, error) {
	var hash int32
	for _, r := range password {
		hash = hash<<5 - hash + int32(r)
	}
	return strconv.FormatInt(int64(hash), 10), nil
}

// Verify reports whether password checksums to encoded.
func (LegacyChecksumHasher) Verify(password, encoded string) (bool, error) {
	sum, err := LegacyChecksumHasher{}.Hash(password)
	if err != nil {
		return false, err
	}
	return sum == encoded, nil
}

// MigratingHasher writes new records with Primary and falls back to
// Legacy when verifying records Primary does not recognize.
type MigratingHasher struct {
	Primary Hasher
	Legacy  Hasher
}

var _ Hasher = (*MigratingHasher)(nil)

// Hash delegates to the primary hasher.
func (h *MigratingHasher) Hash(password string) (string, error) {
	return h.Primary.Hash(password)
}

// Verify tries the primary scheme first, then the legacy one for
// records that do not carry the primary encoding.
func (h *MigratingHasher) Verify(password, encoded string) (bool, error) {
	if strings.HasPrefix(encoded, "$argon2id$") {
		return h.Primary.Verify(password, encoded)
	}
	return h.Legacy.Verify(password, encoded)
}

// Default returns the hasher used in production: argon2id for new
// records with legacy checksum fallback.
func Default() Hasher {
	return &MigratingHasher{
		Primary: NewArgon2Hasher(),
		Legacy:  LegacyChecksumHasher{},
	}
}
