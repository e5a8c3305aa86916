package cmd

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/strivecli/strive/internal/bundle"
	"github.com/strivecli/strive/internal/config"
	"github.com/strivecli/strive/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all goals and settings to a file",
	Long: `Write every goal, log, and setting to a single JSON file. With --encrypt
(or export.encrypt = true in the config) the file is sealed with a passphrase
using age; you'll need the same passphrase to import it.`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore goals and settings from an export",
	Long: `Replace all goals and settings with the contents of an export file.
Encrypted exports are detected automatically and prompt for the passphrase.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportOutput  string
	exportEncrypt bool
	exportPlain   bool

	importForce bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default strive-export-YYYY-MM-DD.json)")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "Encrypt the export with a passphrase")
	exportCmd.Flags().BoolVar(&exportPlain, "plain", false, "Skip encryption even if the config enables it")

	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Replace existing data without asking")
}

// readPassphrase gets the export passphrase without echoing it. The
// STRIVE_EXPORT_PASSPHRASE env var short-circuits the prompt for scripts.
func readPassphrase(prompt string, confirmIt bool) (string, error) {
	if p := os.Getenv("STRIVE_EXPORT_PASSPHRASE"); p != "" {
		return p, nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", errors.New("no passphrase: set STRIVE_EXPORT_PASSPHRASE or run in a terminal")
	}

	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	pass := string(raw)
	if pass == "" {
		return "", errors.New("passphrase must not be empty")
	}

	if confirmIt {
		fmt.Fprint(os.Stderr, "Confirm passphrase: ")
		again, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		if string(again) != pass {
			return "", errors.New("passphrases do not match")
		}
	}
	return pass, nil
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := s.List()
	if err != nil {
		return err
	}
	settings, err := db.AllKV()
	if err != nil {
		return err
	}

	now := time.Now()
	data, err := bundle.New(goals, settings, now).Encode()
	if err != nil {
		return err
	}

	encrypt := exportEncrypt || (cfg.Export.EncryptByDefault() && !exportPlain)
	if encrypt {
		pass, err := readPassphrase("Passphrase for the export", true)
		if err != nil {
			return err
		}
		if data, err = bundle.Encrypt(data, pass); err != nil {
			return err
		}
	}

	out := exportOutput
	if out == "" {
		ext := ".json"
		if encrypt {
			ext = ".json.age"
		}
		out = fmt.Sprintf("strive-export-%s%s", now.Format("2006-01-02"), ext)
	}
	if err := bundle.WriteFile(out, data); err != nil {
		return err
	}

	what := fmt.Sprintf("Exported %d goals to %s", len(goals), ui.Accent.Render(out))
	if encrypt {
		what += " (encrypted)"
	}
	ui.Ok(what)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	if bundle.IsEncrypted(data) {
		pass, err := readPassphrase("Passphrase", false)
		if err != nil {
			return err
		}
		data, err = bundle.Decrypt(data, pass)
		if err != nil {
			if errors.Is(err, bundle.ErrWrongPassphrase) {
				return errors.New("wrong passphrase")
			}
			return err
		}
	}

	b, err := bundle.Decode(data)
	if err != nil {
		switch {
		case errors.Is(err, bundle.ErrNotBundle):
			return fmt.Errorf("%s is not a strive export: %w", args[0], err)
		case errors.Is(err, bundle.ErrInvalidJSON):
			return fmt.Errorf("%s is not valid JSON: %w", args[0], err)
		}
		return err
	}

	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if !importForce {
		existing, err := s.List()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			fmt.Printf("Replace your %d existing goals with the %d from this export? [y/N] ", len(existing), len(b.Goals))
			if !confirm() {
				ui.Inf("Import cancelled")
				return nil
			}
		}
	}

	if err := s.ReplaceAll(b.Goals); err != nil {
		return err
	}
	for k, v := range b.Settings {
		if err := db.SetKV(k, v); err != nil {
			return err
		}
	}

	ui.Ok(fmt.Sprintf("Imported %d goals", len(b.Goals)))
	return nil
}
