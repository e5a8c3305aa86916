package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_NonEmpty(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
}

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{"user.name", "display.theme", "export.encrypt"}
	names := ValidKeyNames()
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Known(t *testing.T) {
	entry, ok := LookupKey("user.name")
	if !ok {
		t.Fatal("expected user.name to be found")
	}
	if entry.Type != KeyTypeString {
		t.Fatalf("expected string type for user.name, got %q", entry.Type)
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	_, ok := LookupKey("not.a.real.key")
	if ok {
		t.Fatal("expected unknown key to return false")
	}
}

func TestParseBoolValue_TrueVariants(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", "TRUE", "YES", "On"} {
		b, err := ParseBoolValue(v)
		if err != nil {
			t.Errorf("ParseBoolValue(%q): unexpected error: %v", v, err)
		}
		if !b {
			t.Errorf("ParseBoolValue(%q): expected true", v)
		}
	}
}

func TestParseBoolValue_FalseVariants(t *testing.T) {
	for _, v := range []string{"false", "0", "no", "off", "FALSE", "NO", "Off"} {
		b, err := ParseBoolValue(v)
		if err != nil {
			t.Errorf("ParseBoolValue(%q): unexpected error: %v", v, err)
		}
		if b {
			t.Errorf("ParseBoolValue(%q): expected false", v)
		}
	}
}

func TestParseBoolValue_Invalid(t *testing.T) {
	for _, v := range []string{"maybe", "yep", "nope", "", "2", "tru"} {
		_, err := ParseBoolValue(v)
		if err == nil {
			t.Errorf("ParseBoolValue(%q): expected error for invalid bool", v)
		}
	}
}

func TestSetGetUnset_StringKey(t *testing.T) {
	cfg := &Config{}
	entry, ok := LookupKey("user.name")
	if !ok {
		t.Fatal("user.name not found in registry")
	}

	if err := entry.Set(cfg, "Alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "Alice" {
		t.Fatalf("Get: expected 'Alice', got %q", got)
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "" {
		t.Fatalf("Unset: expected '', got %q", got)
	}
}

func TestSetGetUnset_BoolKey(t *testing.T) {
	cfg := &Config{}
	entry, ok := LookupKey("export.encrypt")
	if !ok {
		t.Fatal("export.encrypt not found in registry")
	}

	if err := entry.Set(cfg, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "true" {
		t.Fatalf("Get: expected 'true', got %q", got)
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "false" {
		t.Fatalf("Unset: expected 'false', got %q", got)
	}
}

func TestSet_BoolInvalidType(t *testing.T) {
	cfg := &Config{}
	entry, ok := LookupKey("export.encrypt")
	if !ok {
		t.Fatal("export.encrypt not found in registry")
	}

	err := entry.Set(cfg, "notabool")
	if err == nil {
		t.Fatal("expected error for invalid bool value")
	}
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	cfg := defaultConfig()
	entry, ok := LookupKey("display.theme")
	if !ok {
		t.Fatal("display.theme not found in registry")
	}

	if err := entry.Set(cfg, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "dark" {
		t.Fatalf("Get: expected 'dark', got %q", got)
	}

	if err := entry.Set(cfg, "solarized"); err == nil {
		t.Fatal("expected error for unknown theme")
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "auto" {
		t.Fatalf("Unset: expected 'auto', got %q", got)
	}
}

func TestAllSchemaKeys_GetSetUnsetDoNotPanic(t *testing.T) {
	cfg := defaultConfig()
	for key, entry := range SchemaKeys {
		// Verify Get doesn't panic.
		_ = entry.Get(cfg)

		// Verify Unset doesn't panic.
		entry.Unset(cfg)

		// Verify Get after Unset doesn't panic.
		_ = entry.Get(cfg)

		// Verify Set with the default doesn't fail for string keys.
		if entry.Type == KeyTypeString && entry.DefaultStr != "" {
			if err := entry.Set(cfg, entry.DefaultStr); err != nil {
				t.Errorf("key %q: Set with default value %q failed: %v", key, entry.DefaultStr, err)
			}
		}
	}
}

func TestAllSchemaKeys_HaveDesc(t *testing.T) {
	for key, entry := range SchemaKeys {
		if entry.Desc == "" {
			t.Errorf("key %q has empty Desc", key)
		}
	}
}

func TestAllSchemaKeys_HaveValidType(t *testing.T) {
	for key, entry := range SchemaKeys {
		switch entry.Type {
		case KeyTypeString, KeyTypeBool:
			// valid
		default:
			t.Errorf("key %q has invalid Type %q", key, entry.Type)
		}
	}
}

func TestRoundTrip_UserName(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	entry, ok := LookupKey("user.name")
	if !ok {
		t.Fatal("user.name not found")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := entry.Set(cfg, "Alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}

	if got := entry.Get(loaded); got != "Alice" {
		t.Fatalf("round-trip failed: expected 'Alice', got %q", got)
	}
}
