package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultColumns(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	seeds := cfg.DefaultColumns()
	if len(seeds) != 4 {
		t.Fatalf("Expected 4 default columns, got %d", len(seeds))
	}

	if seeds[0].Key != "todo" || seeds[0].Title != "A Fazer" || !seeds[0].IsDefault {
		t.Errorf("First seed = %+v, want todo/A Fazer/default", seeds[0])
	}
	if seeds[3].Key != "done" || seeds[3].Title != "Concluído" || !seeds[3].IsDone {
		t.Errorf("Last seed = %+v, want done/Concluído/done", seeds[3])
	}

	defaults := 0
	for _, s := range seeds {
		if s.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("Expected exactly one default column, got %d", defaults)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	tempDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if len(cfg.Columns) != 4 {
		t.Errorf("Expected default columns, got %d", len(cfg.Columns))
	}
	if cfg.DatabasePath == "" {
		t.Error("Expected a default database path")
	}
	if cfg.SocketPath == "" {
		t.Error("Expected a default socket path")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	tempDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "quadro")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `database_path: /tmp/custom.db
columns:
  - title: "Backlog"
    is_default: true
  - title: "Doing"
  - title: "Done Done"
    is_done: true
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabasePath != "/tmp/custom.db" {
		t.Errorf("DatabasePath = %q, want /tmp/custom.db", cfg.DatabasePath)
	}
	if len(cfg.Columns) != 3 {
		t.Fatalf("Expected 3 configured columns, got %d", len(cfg.Columns))
	}

	// Keys are derived from titles when omitted
	if cfg.Columns[0].Key != "backlog" {
		t.Errorf("First key = %q, want backlog", cfg.Columns[0].Key)
	}
	if cfg.Columns[2].Key != "done_done" {
		t.Errorf("Third key = %q, want done_done", cfg.Columns[2].Key)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	tempDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg := &Config{
		DatabasePath: "/tmp/roundtrip.db",
		Columns: []ColumnConfig{
			{Title: "Backlog", IsDefault: true},
			{Title: "Shipped", IsDone: true},
		},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}
	if path != filepath.Join(tempDir, "quadro", "config.yaml") {
		t.Errorf("Path() = %q, want it under %s", path, tempDir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Saved config missing: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if loaded.DatabasePath != "/tmp/roundtrip.db" {
		t.Errorf("DatabasePath = %q, want /tmp/roundtrip.db", loaded.DatabasePath)
	}
	if len(loaded.Columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(loaded.Columns))
	}
	if loaded.Columns[0].Key != "backlog" || !loaded.Columns[0].IsDefault {
		t.Errorf("First column = %+v, want backlog/default", loaded.Columns[0])
	}
	if loaded.Columns[1].Key != "shipped" || !loaded.Columns[1].IsDone {
		t.Errorf("Second column = %+v, want shipped/done", loaded.Columns[1])
	}
}

func TestDatabasePathEnvOverride(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	origDB := os.Getenv("QUADRO_DB_PATH")
	defer func() {
		os.Setenv("XDG_CONFIG_HOME", origXDG)
		os.Setenv("QUADRO_DB_PATH", origDB)
	}()

	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	os.Setenv("QUADRO_DB_PATH", "/tmp/override.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DatabasePath != "/tmp/override.db" {
		t.Errorf("DatabasePath = %q, want env override /tmp/override.db", cfg.DatabasePath)
	}
}
