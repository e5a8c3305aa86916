package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/strivecli/strive/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		short   bool
		wantOut string
	}{
		{
			name:    "default version output",
			short:   false,
			wantOut: fmt.Sprintf("strive %s", version.Full()),
		},
		{
			name:    "short flag version output",
			short:   true,
			wantOut: version.Short(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versionShort = tt.short
			defer func() { versionShort = false }()

			out := captureStdout(t, func() {
				if err := runVersion(nil, nil); err != nil {
					t.Errorf("runVersion: %v", err)
				}
			})

			if got := strings.TrimSpace(out); got != tt.wantOut {
				t.Errorf("output mismatch\nWant: %s\nGot: %s", tt.wantOut, got)
			}
		})
	}
}
