package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// argon2id parameters. Raising these is safe: NeedsRehash flags every hash
// stored with weaker parameters, and login rehashes with the just-verified
// plaintext.
type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
	saltLen int
	keyLen  uint32
}

var currentParams = hashParams{
	memory:  64 * 1024,
	time:    1,
	threads: 4,
	saltLen: 16,
	keyLen:  32,
}

// HashPassword computes a salted argon2id hash of the plaintext and returns
// it in the standard $argon2id$... encoded form.
func HashPassword(plaintext string) string {
	salt := make([]byte, currentParams.saltLen)
	rand.Read(salt) // never fails per crypto/rand docs

	key := argon2.IDKey([]byte(plaintext), salt, currentParams.time, currentParams.memory, currentParams.threads, currentParams.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, currentParams.memory, currentParams.time, currentParams.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// VerifyPassword reports whether plaintext matches the stored hash. A
// malformed stored hash verifies false, never errors. Legacy bcrypt hashes
// (from before the argon2 migration) are still accepted so existing accounts
// keep working; NeedsRehash upgrades them on the next successful login.
func VerifyPassword(stored, plaintext string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}

	params, salt, key, err := decodeArgonHash(stored)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, params.time, params.memory, params.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// NeedsRehash reports whether the stored hash should be recomputed: true for
// legacy bcrypt hashes, for argon2id hashes with weaker-than-current
// parameters, and for anything unparseable.
func NeedsRehash(stored string) bool {
	if !strings.HasPrefix(stored, "$argon2id$") {
		return true
	}
	params, _, key, err := decodeArgonHash(stored)
	if err != nil {
		return true
	}
	return params.memory < currentParams.memory ||
		params.time < currentParams.time ||
		params.threads < currentParams.threads ||
		uint32(len(key)) < currentParams.keyLen
}

func decodeArgonHash(stored string) (hashParams, []byte, []byte, error) {
	parts := strings.Split(stored, "$")
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return hashParams{}, nil, nil, fmt.Errorf("malformed hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return hashParams{}, nil, nil, fmt.Errorf("unsupported argon2 version")
	}

	var params hashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("malformed argon2 parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("malformed salt")
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("malformed key")
	}

	return params, salt, key, nil
}
