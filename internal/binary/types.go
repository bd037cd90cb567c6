package binary

import (
	"fmt"
	"os"
)

// ExecutableMode is the permission set applied to installed binaries (rwxr-xr-x).
const ExecutableMode os.FileMode = 0755

// VerificationMethod indicates how a binary was verified
type VerificationMethod int

const (
	// VerificationNone indicates no verification (should never happen in production)
	VerificationNone VerificationMethod = iota
	// VerificationMD5 indicates only the manifest checksum was checked
	VerificationMD5
	// VerificationGPG indicates the checksum and an OpenPGP signature were checked
	VerificationGPG
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationMD5:
		return "MD5"
	case VerificationGPG:
		return "MD5+GPG"
	case VerificationNone:
		return "None"
	default:
		return "Unknown"
	}
}

// ChecksumMismatchError reports downloaded bytes whose digest differs from
// the manifest.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch:\nactual:   %s\nexpected: %s", e.Actual, e.Expected)
}

// SignatureError reports a failed OpenPGP verification.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature verification failed: %v", e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// FilesystemError reports a failure to create, write or chmod the install target.
type FilesystemError struct {
	Op   string // "create directory", "write", "rename", "chmod", "lock"
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
