// Package bundle implements the strive export format: a single JSON document
// holding every goal (records included) plus a snapshot of settings. Bundles
// are self-contained and portable between machines; optionally they are
// age-encrypted with a passphrase for transfer over untrusted channels.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/strivecli/strive/internal/goal"
)

// CurrentVersion is the bundle format version written by this build.
const CurrentVersion = 1

// ErrInvalidJSON is returned when import data is not parseable JSON at all.
var ErrInvalidJSON = errors.New("file is not valid JSON")

// ErrNotBundle is returned when import data is valid JSON but not a strive
// export bundle. Distinct from ErrInvalidJSON so the CLI can tell the user
// whether they picked the wrong file or a truncated one.
var ErrNotBundle = errors.New("file is not a strive export")

// Bundle is the export document. Settings is nil when no settings were ever
// written, and serializes to JSON null in that case.
type Bundle struct {
	Version    int               `json:"version"`
	ExportedAt string            `json:"exportedAt"`
	Goals      []goal.Goal       `json:"goals"`
	Settings   map[string]string `json:"settings"`
}

// New builds a bundle from the current goal collection and settings snapshot.
// A nil goals slice is exported as an empty array, never null.
func New(goals []goal.Goal, settings map[string]string, now time.Time) *Bundle {
	if goals == nil {
		goals = []goal.Goal{}
	}
	return &Bundle{
		Version:    CurrentVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Goals:      goals,
		Settings:   settings,
	}
}

// Encode serializes the bundle as indented JSON, trailing newline included,
// so the export is diff- and editor-friendly.
func (b *Bundle) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding bundle: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses and validates bundle bytes. The two failure modes are kept
// apart: ErrInvalidJSON for malformed input, ErrNotBundle for well-formed
// JSON that isn't an export (wrong shape, or a version newer than this build
// understands).
func Decode(data []byte) (*Bundle, error) {
	var probe struct {
		Version int             `json:"version"`
		Goals   json.RawMessage `json:"goals"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		// Valid JSON of the wrong shape (a top-level array, number, string)
		// surfaces as a type error; anything else is malformed input.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotBundle
		}
		return nil, ErrInvalidJSON
	}
	if len(probe.Goals) == 0 || probe.Goals[0] != '[' {
		return nil, ErrNotBundle
	}
	if probe.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: bundle version %d is newer than this build supports", ErrNotBundle, probe.Version)
	}

	// No per-goal schema validation: an import must accept shapes the form
	// would reject (e.g. a target number without a baseline), since the
	// progress engine treats those as insufficient data rather than errors.
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, ErrNotBundle
	}
	return &b, nil
}

// WriteFile writes bundle bytes atomically: temp file in the destination
// directory, fsync, rename. An interrupted export never leaves a partial file
// behind at the destination path.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".strive-export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing export file: %w", err)
	}

	success = true
	return nil
}
