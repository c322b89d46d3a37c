package entities

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used by SetPassword.
var PasswordCost = bcrypt.DefaultCost

// PasswordDigest holds a bcrypt hash. The hash can be written to and read
// from the database but never rendered through JSON, text or fmt.
type PasswordDigest struct {
	hash string
}

func (p PasswordDigest) isSet() bool { return p.hash != "" }

// Value implements driver.Valuer.
func (p PasswordDigest) Value() (driver.Value, error) {
	return p.hash, nil
}

// Scan implements sql.Scanner.
func (p *PasswordDigest) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		p.hash = ""
	case string:
		p.hash = v
	case []byte:
		p.hash = string(v)
	default:
		return fmt.Errorf("unsupported password digest type %T", src)
	}
	return nil
}

func (p PasswordDigest) MarshalJSON() ([]byte, error) { return nil, ErrPasswordHashAccess }

func (p PasswordDigest) MarshalText() ([]byte, error) { return nil, ErrPasswordHashAccess }

func (p PasswordDigest) String() string { return "[REDACTED]" }

func (p PasswordDigest) GoString() string { return "entities.PasswordDigest{[REDACTED]}" }

// SetPassword hashes raw and stores only the hash.
func (u *User) SetPassword(raw string) error {
	if raw == "" {
		return NewValidationError("Password must be present")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return NewValidationError("Password must be at most 72 bytes long")
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.Password = PasswordDigest{hash: string(hash)}
	return nil
}

// Authenticate reports whether raw matches the stored hash.
func (u *User) Authenticate(raw string) bool {
	if !u.Password.isSet() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password.hash), []byte(raw)) == nil
}

// PasswordHash always fails: hashes are write-only.
func (u *User) PasswordHash() (string, error) {
	return "", ErrPasswordHashAccess
}
