package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/tally/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{
		"DATA_DIR", "BACKEND", "MONTHS_BACK", "NAME_A", "NAME_B",
		"THEME", "CURRENCY", "EXPORT_DIR", "EXPORT_LABEL", "LEDGER",
	} {
		t.Setenv(EnvPrefix+k, "")
		_ = os.Unsetenv(EnvPrefix + k)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.General.MonthsBack != 6 {
		t.Errorf("MonthsBack = %d, want 6", cfg.General.MonthsBack)
	}
	if cfg.General.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.General.Backend)
	}
	if got, want := cfg.DataDir(), filepath.Join(dir, "data", "tally"); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
	if cfg.ExportDir() != "." {
		t.Errorf("ExportDir() = %q, want .", cfg.ExportDir())
	}
	names := cfg.Names()
	if names.Of(model.PayerA) != "Person A" || names.Of(model.PayerB) != "Person B" {
		t.Errorf("Names() = %v", names)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Participants.A = "Ann"
	cfg.Participants.B = "Ben"
	cfg.Appearance.CurrencySymbol = "€"
	cfg.Export.Label = "Home"
	cfg.General.MonthsBack = 12
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Participants.A = "FromFile"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TALLY_NAME_A", "FromEnv")
	t.Setenv("TALLY_MONTHS_BACK", "3")
	t.Setenv("TALLY_BACKEND", "sqlite")
	t.Setenv("TALLY_DATA_DIR", "/tmp/ledger")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Participants.A != "FromEnv" {
		t.Errorf("A = %q, want FromEnv", got.Participants.A)
	}
	if got.Participants.B != "Person B" {
		t.Errorf("B = %q, want Person B", got.Participants.B)
	}
	if got.General.MonthsBack != 3 {
		t.Errorf("MonthsBack = %d, want 3", got.General.MonthsBack)
	}
	if got.General.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", got.General.Backend)
	}
	if got.DataDir() != "/tmp/ledger" {
		t.Errorf("DataDir() = %q", got.DataDir())
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv("TALLY_MONTHS_BACK", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric TALLY_MONTHS_BACK")
	}
}

func TestLoad_BadFile(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(ConfigDir(), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\nmonths_back = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.MonthsBack = 0
	if err := cfg.Validate(); err == nil {
		t.Error("MonthsBack 0 accepted")
	}

	for _, ledger := range []string{"household", "trip-2024", ""} {
		cfg := DefaultConfig()
		cfg.General.Ledger = ledger
		if err := cfg.Validate(); err != nil {
			t.Errorf("ledger %q rejected: %v", ledger, err)
		}
	}
	for _, ledger := range []string{".", "..", "a/b", `a\b`, "../expenses"} {
		cfg := DefaultConfig()
		cfg.General.Ledger = ledger
		if err := cfg.Validate(); err == nil {
			t.Errorf("ledger %q accepted", ledger)
		}
	}
}

func TestUpdate_KeepsOverridesOutOfFile(t *testing.T) {
	dir := isolate(t)

	stored := DefaultConfig()
	stored.Export.Label = "Home"
	if err := Save(stored); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	t.Setenv(EnvPrefix+"DATA_DIR", filepath.Join(dir, "elsewhere"))
	t.Setenv(EnvPrefix+"MONTHS_BACK", "24")
	effective, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if effective.General.MonthsBack != 24 {
		t.Fatalf("MonthsBack = %d, want 24 from the environment", effective.General.MonthsBack)
	}

	saved, err := Update(func(c Config) Config {
		c.Participants.A = "Ann"
		return c
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if saved.Participants.A != "Ann" {
		t.Errorf("returned A = %q, want Ann", saved.Participants.A)
	}

	onDisk, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if onDisk.Participants.A != "Ann" {
		t.Errorf("A = %q, want Ann", onDisk.Participants.A)
	}
	if onDisk.Export.Label != "Home" {
		t.Errorf("Label = %q, want Home kept from the file", onDisk.Export.Label)
	}
	if onDisk.General.DataDir != "" {
		t.Errorf("DataDir = %q, want it left out of the file", onDisk.General.DataDir)
	}
	if onDisk.General.MonthsBack != 6 {
		t.Errorf("MonthsBack = %d, want 6", onDisk.General.MonthsBack)
	}
}

func TestUpdate_RejectsInvalid(t *testing.T) {
	isolate(t)

	_, err := Update(func(c Config) Config {
		c.General.Ledger = ".."
		return c
	})
	if err == nil {
		t.Fatal("Update accepted an invalid ledger")
	}
	if Exists() {
		t.Error("config file written despite the validation error")
	}
}
