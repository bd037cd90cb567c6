// Package binary verifies downloaded release binaries and writes them to
// disk as executables.
//
// # Security Model
//
// A binary is never written unless verification succeeded:
//   - The MD5 digest published in the release manifest must match the
//     downloaded bytes (compared case-insensitively as hex)
//   - When a keyring is configured, a detached OpenPGP signature must also
//     verify against it
//
// MD5 only detects corruption in transit. Authenticity requires the
// optional signature check.
//
// # Usage
//
//	if err := binary.VerifyMD5(data, asset.Digest); err != nil {
//	    return err // *binary.ChecksumMismatchError
//	}
//
//	verifier, err := binary.NewVerifier(keyringPath)
//	if err != nil {
//	    return err
//	}
//	if err := verifier.VerifySignature(data, signature); err != nil {
//	    return err // *binary.SignatureError
//	}
//
//	path, err := binary.WriteExecutable(installDir, "theme", data)
//
// # Architecture
//
// The package is organized into several components:
//   - Verifier: MD5 and OpenPGP verification
//   - Keyring: loading armored or binary public keyrings
//   - Writer: lock, temp file, rename and chmod 0755
package binary
