package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/config"
	"github.com/strivecli/strive/internal/store"
	"github.com/strivecli/strive/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up strive for the first time",
	Long:  `Initialize strive with your preferences. Creates config and data directories.`,
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconGoal + " Welcome to strive!"))
	fmt.Println()
	ui.Inf("Let's get you set up. This takes a few seconds.")
	fmt.Println()

	name := prompt(reader, "  What should I call you?", guessName())
	fmt.Println()

	cfg := &config.Config{Display: config.DisplayConfig{Theme: "auto"}}
	cfg.User.Name = name

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// Initialize database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	db.Close()

	paths := config.GetPaths()

	if name != "" {
		ui.Ok("All set, " + name + "! " + ui.IconParty)
	} else {
		ui.Ok("All set! " + ui.IconParty)
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Created:"))
	fmt.Printf("    Config  %s\n", ui.Muted.Render(paths.ConfigFile))
	fmt.Printf("    Data    %s\n", ui.Muted.Render(paths.DBFile))
	fmt.Println()

	fmt.Println(ui.Muted.Render("  Where to start:"))
	fmt.Println()
	fmt.Printf("    %s  set a goal with a number to hit\n",
		ui.KeyStyle.Render(`strive goal add "Save €800" --start 0 --target 800 --unit € --sum`))
	fmt.Printf("    %s  or a simple daily habit\n",
		ui.KeyStyle.Render(`strive goal add "Meditate" --plan --days mon,wed,fri`))
	fmt.Printf("    %s  then log as you go\n",
		ui.KeyStyle.Render("strive log <goal> [value]"))
	fmt.Println()
	fmt.Printf("  Type %s anytime to see your dashboard.\n", ui.Accent.Render("strive"))
	fmt.Println()

	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func guessName() string {
	// Try git config first
	if name := gitUserName(); name != "" {
		return name
	}
	// Fall back to OS user
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}

func gitUserName() string {
	// Simple: read git config for user.name
	// We'll keep this lightweight — no exec, just parse the file
	home, _ := os.UserHomeDir()
	data, err := os.ReadFile(home + "/.gitconfig")
	if err != nil {
		return ""
	}

	inUser := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "[user]" {
			inUser = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			inUser = false
			continue
		}
		if inUser && strings.HasPrefix(line, "name") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				return strings.Trim(strings.TrimSpace(parts[1]), `"`)
			}
		}
	}
	return ""
}
