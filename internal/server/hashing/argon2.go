// Package hashing computes and verifies Argon2id password hashes in the
// fixed self-describing PHC format this service stores. Hashing is
// CPU-bound, so both operations run under a weighted semaphore sized to
// the number of schedulable CPUs: a burst of signups or logins can never
// occupy every goroutine-serving thread with key derivation.
package hashing

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/dmitrijs2005/authcore/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Fixed Argon2id cost parameters. Changing any of these invalidates every
// stored hash, because the verifier rejects encodings that do not match
// the exact parameter string.
const (
	memoryKiB = 64 * 1024
	timeCost  = 4
	threads   = 1
	saltLen   = 16
	keyLen    = 32
)

// ErrMismatch indicates the candidate does not match the stored hash.
// Callers outside this package must treat it, like ErrMalformedHash, as a
// plain authentication failure.
var ErrMismatch = errors.New("password mismatch")

var encodedHashRegexp = regexp.MustCompile(
	fmt.Sprintf(`^\$argon2id\$v=%d\$m=%d,t=%d,p=%d\$[A-Za-z0-9+/]{22}\$[A-Za-z0-9+/]{43}$`,
		argon2.Version, memoryKiB, timeCost, threads))

type Argon2Hasher struct {
	sem *semaphore.Weighted
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		sem: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Hash derives an Argon2id hash of the candidate under a fresh random
// salt and returns the encoded form.
func (h *Argon2Hasher) Hash(ctx context.Context, candidate string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: acquiring hashing slot: %w", common.ErrorInternal, err)
	}
	defer h.sem.Release(1)

	salt := common.GenerateRandByteArray(saltLen)
	key := argon2.IDKey([]byte(candidate), salt, timeCost, memoryKiB, threads, keyLen)

	return encode(salt, key), nil
}

// Verify checks the candidate against an encoded hash. It returns
// common.ErrMalformedHash when the encoding does not match the expected
// parameter string and ErrMismatch when the password is wrong. The
// comparison is constant-time.
func (h *Argon2Hasher) Verify(ctx context.Context, encoded, candidate string) error {
	salt, key, err := decode(encoded)
	if err != nil {
		return err
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: acquiring hashing slot: %w", common.ErrorInternal, err)
	}
	defer h.sem.Release(1)

	candidateKey := argon2.IDKey([]byte(candidate), salt, timeCost, memoryKiB, threads, keyLen)

	if subtle.ConstantTimeCompare(key, candidateKey) != 1 {
		return ErrMismatch
	}

	return nil
}

func encode(salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, timeCost, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decode(encoded string) (salt, key []byte, err error) {
	if !encodedHashRegexp.MatchString(encoded) {
		return nil, nil, common.ErrMalformedHash
	}

	parts := strings.Split(encoded, "$")

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, common.ErrMalformedHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, common.ErrMalformedHash
	}

	return salt, key, nil
}
