package bundle

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strivecli/strive/internal/goal"
)

func fp(v float64) *float64 { return &v }

func sampleGoals() []goal.Goal {
	return []goal.Goal{
		{
			ID:             "g-1",
			Name:           "Savings",
			StartDate:      "2026-03-02",
			StartingNumber: fp(0),
			TargetNumber:   fp(500),
			Unit:           "€",
			Cumulative:     true,
			Records: []goal.Record{
				{ID: "r-1", Date: "2026-03-02", Value: fp(50)},
				{ID: "r-2", Date: "2026-03-05", Value: fp(25), Note: "birthday money"},
			},
		},
		{ID: "g-2", Name: "Meditate", StartDate: "2026-03-02", Order: 1},
	}
}

func TestBundleRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	b := New(sampleGoals(), map[string]string{"hide-completed": "true"}, now)

	data, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != CurrentVersion {
		t.Errorf("version = %d", got.Version)
	}
	if got.ExportedAt != "2026-03-10T09:30:00Z" {
		t.Errorf("exportedAt = %q", got.ExportedAt)
	}
	if len(got.Goals) != 2 {
		t.Fatalf("got %d goals", len(got.Goals))
	}
	g := got.Goals[0]
	if g.ID != "g-1" || len(g.Records) != 2 || *g.Records[1].Value != 25 || g.Records[1].Note != "birthday money" {
		t.Errorf("goal round-trip mismatch: %+v", g)
	}
	if g.TargetNumber == nil || *g.TargetNumber != 500 {
		t.Errorf("target = %v", g.TargetNumber)
	}
	if got.Settings["hide-completed"] != "true" {
		t.Errorf("settings = %v", got.Settings)
	}
}

func TestBundleNilSettingsSerializeAsNull(t *testing.T) {
	b := New(nil, nil, time.Now())
	data, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"settings": null`)) {
		t.Errorf("expected null settings in:\n%s", data)
	}
	if !bytes.Contains(data, []byte(`"goals": []`)) {
		t.Errorf("nil goals must export as an empty array, got:\n%s", data)
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"version": 1, "goals": [`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("err = %v, want ErrInvalidJSON", err)
	}
}

func TestDecodeNotABundle(t *testing.T) {
	inputs := []string{
		`42`,
		`"just a string"`,
		`[1, 2, 3]`,
		`{"hello": "world"}`,
		`{"version": 1, "goals": null}`,
		`{"version": 1, "goals": {"not": "an array"}}`,
	}
	for _, in := range inputs {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrNotBundle) {
			t.Errorf("Decode(%s) err = %v, want ErrNotBundle", in, err)
		}
	}
}

func TestDecodeNewerVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version": 99, "goals": []}`))
	if !errors.Is(err, ErrNotBundle) {
		t.Errorf("err = %v, want ErrNotBundle for a future version", err)
	}
}

func TestDecodeAcceptsGoalsTheFormWouldReject(t *testing.T) {
	// Imports take the data as-is; form-level rules apply only when saving.
	// A target without a baseline is the insufficient-data case, not an error.
	b, err := Decode([]byte(`{"version": 1, "goals": [
		{"id": "x", "name": "", "startDate": "2026-03-02"},
		{"id": "y", "name": "Save", "startDate": "2026-03-02", "targetNumber": 800}
	]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(b.Goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(b.Goals))
	}
	if b.Goals[1].TargetNumber == nil || *b.Goals[1].TargetNumber != 800 {
		t.Errorf("target number lost in decode: %+v", b.Goals[1].TargetNumber)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	b := New(sampleGoals(), nil, time.Now())
	plain, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}

	cipher, err := Encrypt(plain, "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !IsEncrypted(cipher) {
		t.Error("encrypted output must be recognizable")
	}
	if IsEncrypted(plain) {
		t.Error("plain JSON must not look encrypted")
	}
	if bytes.Contains(cipher, []byte("Savings")) {
		t.Error("plaintext leaked into the ciphertext")
	}

	back, err := Decrypt(cipher, "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, plain) {
		t.Error("decrypted bytes differ from the original")
	}
	if _, err := Decode(back); err != nil {
		t.Errorf("decrypted bundle must decode: %v", err)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	cipher, err := Encrypt([]byte(`{}`), "right")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decrypt(cipher, "wrong")
	if !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("err = %v, want ErrWrongPassphrase", err)
	}
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt([]byte("not an age file"), "pass")
	if !errors.Is(err, ErrCorruptedExport) {
		t.Errorf("err = %v, want ErrCorruptedExport", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := WriteFile(path, []byte("hello\n")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Errorf("file contents = %q", data)
	}

	// Overwrites are atomic replacements of the whole file.
	if err := WriteFile(path, []byte("second\n")); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second\n" {
		t.Errorf("file contents after rewrite = %q", data)
	}
}
