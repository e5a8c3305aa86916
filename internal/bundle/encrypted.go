package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorruptedExport is returned when an encrypted export exists but cannot be
// decrypted or parsed.
var ErrCorruptedExport = errors.New("encrypted export is corrupted or unreadable")

// IsEncrypted reports whether data looks like an age-armored export rather
// than a plain JSON bundle.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN AGE ENCRYPTED FILE-----"))
}

// Encrypt encrypts bundle bytes with a passphrase using age scrypt, armored
// so the result is printable and survives copy-paste.
func Encrypt(plain []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}
	if _, err := w.Write(plain); err != nil {
		return nil, fmt.Errorf("encrypting export: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts an age-armored export with a passphrase.
func Decrypt(raw []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	armorReader := armor.NewReader(bytes.NewReader(bytes.TrimSpace(raw)))
	r, err := age.Decrypt(armorReader, identity)
	if err != nil {
		// age does not export a typed error for wrong passphrases; match the
		// known message substrings so the CLI can prompt again instead of
		// reporting a corrupt file.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptedExport, err)
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorruptedExport, err)
	}
	return plain, nil
}
