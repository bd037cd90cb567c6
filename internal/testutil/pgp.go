package testutil

import (
	"bytes"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"       //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/ProtonMail/go-crypto/openpgp/armor" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// SigningKey is a throwaway OpenPGP key for signature tests.
type SigningKey struct {
	t      *testing.T
	entity *openpgp.Entity
}

// NewSigningKey generates a fresh key pair.
func NewSigningKey(t *testing.T, name string) *SigningKey {
	t.Helper()

	entity, err := openpgp.NewEntity(name, "test", name+"@example.com", nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return &SigningKey{t: t, entity: entity}
}

// ArmoredPublicKey returns the public key as an armored keyring.
func (k *SigningKey) ArmoredPublicKey() []byte {
	k.t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		k.t.Fatalf("failed to create armor encoder: %v", err)
	}
	if err := k.entity.Serialize(w); err != nil {
		k.t.Fatalf("failed to serialize public key: %v", err)
	}
	if err := w.Close(); err != nil {
		k.t.Fatalf("failed to close armor encoder: %v", err)
	}
	return buf.Bytes()
}

// BinaryPublicKey returns the public key without armor.
func (k *SigningKey) BinaryPublicKey() []byte {
	k.t.Helper()

	var buf bytes.Buffer
	if err := k.entity.Serialize(&buf); err != nil {
		k.t.Fatalf("failed to serialize public key: %v", err)
	}
	return buf.Bytes()
}

// ArmoredSignature returns an armored detached signature over data.
func (k *SigningKey) ArmoredSignature(data []byte) []byte {
	k.t.Helper()

	var buf bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&buf, k.entity, bytes.NewReader(data), nil); err != nil {
		k.t.Fatalf("failed to sign: %v", err)
	}
	return buf.Bytes()
}

// BinarySignature returns a binary detached signature over data.
func (k *SigningKey) BinarySignature(data []byte) []byte {
	k.t.Helper()

	var buf bytes.Buffer
	if err := openpgp.DetachSign(&buf, k.entity, bytes.NewReader(data), nil); err != nil {
		k.t.Fatalf("failed to sign: %v", err)
	}
	return buf.Bytes()
}
