package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/config"
	"github.com/strivecli/strive/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.GetPaths().ConfigFile)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config keys and their values",
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Supported keys:
  user.name       Your display name
  display.theme   Colour theme (auto, dark, light)
  export.encrypt  Encrypt exports by default (true/false)
  hide-completed  Hide reached goals from listings (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Reset a key to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

// hideCompletedKey lives in the database, not the TOML file: it travels with
// exports like the rest of the goal data.
const hideCompletedKey = "hide-completed"

func runConfigGet(_ *cobra.Command, args []string) error {
	key := args[0]

	if key == hideCompletedKey {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		v, ok, err := db.GetKV("hideCompleted")
		if err != nil {
			return err
		}
		if !ok {
			v = "false"
		}
		fmt.Println(v)
		return nil
	}

	entry, ok := config.LookupKey(key)
	if !ok {
		return unknownKeyErr(key)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fmt.Println(entry.Get(cfg))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if key == hideCompletedKey {
		b, err := config.ParseBoolValue(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s (use true/false)", value, key)
		}
		db, _, err2 := openStore()
		if err2 != nil {
			return err2
		}
		defer db.Close()
		if err := db.SetKV("hideCompleted", fmt.Sprintf("%t", b)); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("%s = %t", key, b))
		return nil
	}

	entry, ok := config.LookupKey(key)
	if !ok {
		return unknownKeyErr(key)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := entry.Set(cfg, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s = %s", key, value))
	return nil
}

func runConfigUnset(_ *cobra.Command, args []string) error {
	key := args[0]

	if key == hideCompletedKey {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.SetKV("hideCompleted", "false"); err != nil {
			return err
		}
		ui.Ok(key + " reset to default")
		return nil
	}

	entry, ok := config.LookupKey(key)
	if !ok {
		return unknownKeyErr(key)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	entry.Unset(cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	ui.Ok(key + " reset to default")
	return nil
}

func runConfigList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ui.Header("Config keys")
	for _, key := range config.ValidKeyNames() {
		entry, _ := config.LookupKey(key)
		fmt.Printf("  %s = %s\n", ui.KeyStyle.Render(key), entry.Get(cfg))
		fmt.Printf("    %s\n", ui.Muted.Render(entry.Desc))
	}
	fmt.Printf("  %s\n", ui.KeyStyle.Render(hideCompletedKey))
	fmt.Printf("    %s\n", ui.Muted.Render("Hide reached goals from listings (stored with your data)"))
	fmt.Println()
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	paths := config.GetPaths()

	ui.Header("Configuration")
	fmt.Println()
	ui.Kv("Name", cfg.User.Name)
	ui.Kv("Theme", cfg.Display.Theme)
	ui.Kv("Encrypt exports", fmt.Sprintf("%t", cfg.Export.EncryptByDefault()))
	fmt.Println()
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	ui.Tip(fmt.Sprintf("Edit directly: %s", ui.Accent.Render("$EDITOR "+paths.ConfigFile)))
	fmt.Println()

	return nil
}

func unknownKeyErr(key string) error {
	return fmt.Errorf("unknown config key %q (known: %s, %s)",
		key, strings.Join(config.ValidKeyNames(), ", "), hideCompletedKey)
}
