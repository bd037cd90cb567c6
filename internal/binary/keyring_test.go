package binary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/themekit/themeinstall/internal/testutil"
)

func TestReadKeyring(t *testing.T) {
	key := testutil.NewSigningKey(t, "release")

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"armored", key.ArmoredPublicKey(), false},
		{"binary", key.BinaryPublicKey(), false},
		{"garbage", []byte("not a keyring"), true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyring, err := ReadKeyring(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadKeyring() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(keyring) != 1 {
				t.Errorf("ReadKeyring() returned %d entities, want 1", len(keyring))
			}
		})
	}
}

func TestLoadKeyring(t *testing.T) {
	key := testutil.NewSigningKey(t, "release")
	dir := t.TempDir()

	path := filepath.Join(dir, "keyring.gpg")
	if err := os.WriteFile(path, key.BinaryPublicKey(), 0644); err != nil {
		t.Fatalf("failed to write keyring: %v", err)
	}

	keyring, err := LoadKeyring(path)
	if err != nil {
		t.Fatalf("LoadKeyring() error = %v", err)
	}
	if len(keyring) != 1 {
		t.Errorf("LoadKeyring() returned %d entities, want 1", len(keyring))
	}

	if _, err := LoadKeyring(filepath.Join(dir, "missing.gpg")); err == nil {
		t.Error("expected error for missing keyring file")
	}
}
