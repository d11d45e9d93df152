package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMainConfigDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "input_dir: ./in\ncontinue_on_error: true\n")

	cfg, err := LoadMainConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputDir != "./in" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.OutputDir != "./output" || cfg.ProfilesDir != "./profiles" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.OutputNamePattern != "{original}_{uuid}" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.ContinueOnError {
		t.Error("continue_on_error not read")
	}
}

func TestLoadMainConfigErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
	path := writeFile(t, t.TempDir(), "bad.yaml", "input_dir: [broken\n")
	if _, err := LoadMainConfig(path); err == nil {
		t.Fatal("malformed YAML must fail")
	}
}

func TestLoadProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bank.yaml", `
name: bank
file_patterns: ["bank_*.csv"]
delimiter: ";"
enclosure: '"'
locale: de_DE
output_format: xlsx
validation:
  min_fields: 3
  columns:
    - column: 0
      required: true
      type: datetime
      layout: "02.01.2006"
`)
	writeFile(t, dir, "datev.yml", `
name: accounting
file_patterns: ["EXTF_*.csv", "DTVF_*.csv"]
format: datev
`)

	profiles, err := LoadProfiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(profiles))
	}

	bank := profiles["bank"]
	if bank == nil {
		t.Fatal("bank profile missing")
	}
	if bank.OutputFormat != OutputXLSX || bank.Format != FormatGeneric {
		t.Errorf("bank profile = %+v", bank)
	}
	if bank.Validation.Columns[0].Layout != "02.01.2006" {
		t.Errorf("column rule lost: %+v", bank.Validation.Columns[0])
	}

	acc := profiles["accounting"]
	if acc == nil || acc.Format != FormatDatev {
		t.Fatalf("accounting profile = %+v", acc)
	}
	// Defaults applied.
	if acc.Delimiter != ";" || acc.Locale != "de_DE" || acc.OutputFormat != OutputXML {
		t.Errorf("defaults not applied: %+v", acc)
	}
}

func TestLoadProfileRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "unknownLocale", content: "name: x\nlocale: fr_FR\n"},
		{name: "unknownFormat", content: "name: x\nformat: fixed\n"},
		{name: "unknownOutput", content: "name: x\noutput_format: pdf\n"},
		{name: "fieldBoundsInverted", content: "name: x\nvalidation:\n  min_fields: 5\n  max_fields: 2\n"},
		{name: "negativeColumn", content: "name: x\nvalidation:\n  columns:\n    - column: -1\n"},
		{name: "unknownColumnType", content: "name: x\nvalidation:\n  columns:\n    - column: 0\n      type: money\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "p.yaml", tc.content)
			if _, err := LoadProfile(path); err == nil {
				t.Fatalf("profile %q must be rejected", tc.content)
			}
		})
	}
}

func TestMatchProfile(t *testing.T) {
	t.Parallel()

	profiles := map[string]*DialectProfile{
		"bank":       {Name: "bank", FilePatterns: []string{"bank_*.csv"}},
		"accounting": {Name: "accounting", FilePatterns: []string{"EXTF_*.csv"}},
	}

	if p := MatchProfile(profiles, "/data/in/bank_2024.csv"); p == nil || p.Name != "bank" {
		t.Fatalf("MatchProfile(bank_2024.csv) = %v", p)
	}
	if p := MatchProfile(profiles, "EXTF_Buchungen.csv"); p == nil || p.Name != "accounting" {
		t.Fatalf("MatchProfile(EXTF_Buchungen.csv) = %v", p)
	}
	if p := MatchProfile(profiles, "notes.txt"); p != nil {
		t.Fatalf("MatchProfile(notes.txt) = %v, want nil", p)
	}
}
