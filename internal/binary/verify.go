package binary

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// ComputeMD5 returns the lowercase hex MD5 digest of data.
func ComputeMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// VerifyMD5 checks data against the hex digest published in the manifest.
// The comparison is case-insensitive.
func VerifyMD5(data []byte, digest string) error {
	actual := ComputeMD5(data)
	expected := strings.TrimSpace(digest)

	if !strings.EqualFold(actual, expected) {
		return &ChecksumMismatchError{
			Expected: expected,
			Actual:   actual,
		}
	}

	return nil
}

// Verifier checks detached OpenPGP signatures against a public keyring.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier loads the keyring at keyringPath.
func NewVerifier(keyringPath string) (*Verifier, error) {
	keyring, err := LoadKeyring(keyringPath)
	if err != nil {
		return nil, err
	}
	return NewVerifierFromKeyring(keyring)
}

// NewVerifierFromKeyring wraps an already loaded keyring.
func NewVerifierFromKeyring(keyring openpgp.EntityList) (*Verifier, error) {
	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}
	return &Verifier{keyring: keyring}, nil
}

// VerifySignature verifies signature (armored or binary) over data.
func (v *Verifier) VerifySignature(data, signature []byte) error {
	// Verify signature (try armored first)
	_, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err != nil {
		// Try non-armored signature
		_, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	}
	if err != nil {
		return &SignatureError{Err: err}
	}

	return nil
}
