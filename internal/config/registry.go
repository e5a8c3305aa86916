package config

import (
	"fmt"
	"sort"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, bool).
	Type KeyType
	// Desc is a human-readable description shown in `strive config list`.
	Desc string
	// DefaultStr is the string representation of the default/zero value.
	DefaultStr string

	// get returns the current value as a string.
	get func(*Config) string
	// set validates and applies the value to cfg, returning an error on type mismatch.
	set func(cfg *Config, value string) error
	// unset resets the key to its schema default.
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name used in dashboard greetings",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset:      func(cfg *Config) { cfg.User.Name = "" },
	},
	"display.theme": {
		Type:       KeyTypeString,
		Desc:       "Colour theme (auto, dark, light)",
		DefaultStr: "auto",
		get:        func(cfg *Config) string { return cfg.Display.Theme },
		set: func(cfg *Config, v string) error {
			switch v {
			case "auto", "dark", "light":
				cfg.Display.Theme = v
				return nil
			default:
				return fmt.Errorf("invalid theme %q (use one of: auto, dark, light)", v)
			}
		},
		unset: func(cfg *Config) { cfg.Display.Theme = "auto" },
	},
	"export.encrypt": {
		Type:       KeyTypeBool,
		Desc:       "Passphrase-encrypt exports by default",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Export.EncryptByDefault()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for export.encrypt: %w", v, err)
			}
			cfg.Export.Encrypt = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Export.Encrypt = nil },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
