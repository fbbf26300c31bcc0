package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Storage.Driver != "json" || cfg.Server.Addr != ":8080" || cfg.Calendar.Name != "Tasks" || !cfg.Seed {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := &Config{
		Storage:  Storage{Driver: "sqlite", Path: "/tmp/tasks.db"},
		Server:   Server{Addr: "127.0.0.1:9000"},
		Calendar: Calendar{Name: "Work"},
		Seed:     false,
	}
	if err := SaveFile(path, want); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if *got != *want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TASKFLOW_STORAGE_DRIVER", "memory")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Expected env override to memory, got %s", cfg.Storage.Driver)
	}
}

func TestStoragePath(t *testing.T) {
	cfg := &Config{Storage: Storage{Driver: "sqlite", Path: "/data/t.db"}}
	if p, _ := cfg.StoragePath(); p != "/data/t.db" {
		t.Errorf("Expected explicit path, got %s", p)
	}
	cfg.Storage.Path = ""
	p, err := cfg.StoragePath()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if filepath.Base(p) != "tasks.db" {
		t.Errorf("Expected tasks.db, got %s", p)
	}
}

func TestReadFileIgnoresEnv(t *testing.T) {
	t.Setenv("TASKFLOW_CALENDAR_NAME", "FromEnv")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveFile(path, &Config{Storage: Storage{Driver: "json"}, Calendar: Calendar{Name: "Home"}}); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if cfg.Calendar.Name != "Home" {
		t.Errorf("Expected file value Home, got %s", cfg.Calendar.Name)
	}

	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Calendar.Name != "FromEnv" {
		t.Errorf("Expected env override FromEnv, got %s", cfg.Calendar.Name)
	}
}

func TestSaveUsesConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := Save(&Config{Storage: Storage{Driver: "memory"}, Calendar: Calendar{Name: "Tasks"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Expected memory driver, got %s", cfg.Storage.Driver)
	}
}
