package keyvault

import (
	"errors"
	"fmt"

	"github.com/opd-ai/keyvault/record"
)

// Sentinel errors making up the caller-facing failure taxonomy. Check them
// with errors.Is; operations wrap them with additional context.
//
// Wrong passwords and tampered salt/nonce/ciphertext on a structurally valid
// record are deliberately collapsed into ErrPasswordInvalid. Distinguishing
// "this part is corrupted" at decrypt time would hand an attacker an oracle;
// structural corruption is instead reported through the classifier, where no
// decryption is attempted and the distinction is safe.
var (
	// ErrPasswordTooShort means the password is below MinPasswordLength.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrVaultExists means a record already exists and overwrite was not
	// requested.
	ErrVaultExists = errors.New("vault already exists")
	// ErrVaultMissing means no vault record is persisted.
	ErrVaultMissing = errors.New("vault missing")
	// ErrPasswordInvalid means decryption failed: wrong password, or a
	// tampered salt, nonce, or ciphertext.
	ErrPasswordInvalid = errors.New("vault password invalid")
	// ErrVaultLocked means the operation needs an unlocked vault or a
	// password, and got neither.
	ErrVaultLocked = errors.New("vault locked")
	// ErrInvalidPrivateKey means the supplied private key hex is malformed
	// or not a usable seed.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrRandomUnavailable means the system entropy source failed.
	ErrRandomUnavailable = errors.New("random source unavailable")
)

// CorruptionError is returned when an operation needs a structurally valid
// record and the classifier rejects the stored bytes. The embedded
// classification says why; Guidance turns it into user-facing recovery text.
type CorruptionError struct {
	Classification record.Classification
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("vault record is corrupted: %s", e.Classification)
}

// ErrorKind maps an error from this package to its stable wire name, for
// hosts that surface failures across a serialization boundary. Unrecognized
// errors map to "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPasswordTooShort):
		return "password_too_short"
	case errors.Is(err, ErrVaultExists):
		return "vault_exists"
	case errors.Is(err, ErrVaultMissing):
		return "vault_missing"
	case errors.Is(err, ErrPasswordInvalid):
		return "vault_password_invalid"
	case errors.Is(err, ErrVaultLocked):
		return "vault_locked"
	case errors.Is(err, ErrInvalidPrivateKey):
		return "invalid_private_key"
	case errors.Is(err, ErrRandomUnavailable):
		return "random_unavailable"
	}

	var corruption *CorruptionError
	if errors.As(err, &corruption) {
		return "vault_corrupted"
	}

	return "internal"
}
