package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cli struct {
	t      *testing.T
	dir    string
	driver string
}

func (c cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	base := []string{
		"--config", filepath.Join(c.dir, "config.yaml"),
		"--storage", c.driver,
		"--data", filepath.Join(c.dir, "tasks."+c.driver),
	}
	root.SetArgs(append(args, base...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeNoSeedConfig(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("seed: false\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestCLIWorkflow(t *testing.T) {
	for _, driver := range []string{"json", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			dir := t.TempDir()
			writeNoSeedConfig(t, dir)
			c := cli{t: t, dir: dir, driver: driver}

			out, errOut, err := c.run("add", "Buy milk", "--priority", "high", "--due", "2000-01-01")
			if err != nil {
				t.Fatalf("add failed: %v", err)
			}
			if !strings.Contains(errOut, "Task created successfully") {
				t.Errorf("Expected creation notice, got %q", errOut)
			}
			id := strings.TrimSpace(out)

			out, _, err = c.run("list", "--filter", "overdue")
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "Overdue • Jan 1, 2000") {
				t.Errorf("Expected overdue task in list, got:\n%s", out)
			}

			if _, errOut, err = c.run("toggle", id); err != nil || !strings.Contains(errOut, "Task completed") {
				t.Fatalf("toggle failed: %v %q", err, errOut)
			}

			out, _, err = c.run("stats")
			if err != nil {
				t.Fatalf("stats failed: %v", err)
			}
			if !strings.Contains(out, "Completion: 100%") {
				t.Errorf("Expected 100%% completion, got:\n%s", out)
			}

			out, _, _ = c.run("list", "--filter", "overdue")
			if !strings.Contains(out, "No tasks found for the current filter.") {
				t.Errorf("Expected empty overdue view, got:\n%s", out)
			}

			if _, _, err = c.run("delete", id); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			out, _, _ = c.run("stats")
			if !strings.Contains(out, "Total:      0") {
				t.Errorf("Expected empty store, got:\n%s", out)
			}
		})
	}
}

func TestCLIRejectsBlankTitle(t *testing.T) {
	dir := t.TempDir()
	writeNoSeedConfig(t, dir)
	c := cli{t: t, dir: dir, driver: "json"}

	if _, _, err := c.run("add", "   "); err == nil {
		t.Error("Expected blank title to fail")
	}
	if _, errOut, err := c.run("delete", "12345"); err != nil || !strings.Contains(errOut, "No task with id 12345") {
		t.Errorf("Expected unknown id to be reported without error, got %v %q", err, errOut)
	}
}

func TestCLISeedsEmptyStore(t *testing.T) {
	c := cli{t: t, dir: t.TempDir(), driver: "json"}
	out, _, err := c.run("list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Welcome to TaskFlow") || !strings.Contains(out, "Review quarterly goals") {
		t.Errorf("Expected seed tasks, got:\n%s", out)
	}
}

func TestCLIImportOrg(t *testing.T) {
	dir := t.TempDir()
	writeNoSeedConfig(t, dir)
	org := filepath.Join(dir, "inbox.org")
	if err := os.WriteFile(org, []byte("* TODO [#A] Pay rent\n* DONE Buy milk\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	c := cli{t: t, dir: dir, driver: "json"}

	out, _, err := c.run("import", "org", org)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 2 tasks") {
		t.Errorf("Unexpected output %q", out)
	}
	out, _, _ = c.run("list", "--filter", "high")
	if !strings.Contains(out, "Pay rent") || strings.Contains(out, "Buy milk") {
		t.Errorf("Expected only the high priority task, got:\n%s", out)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLIConfigSetKeepsEnvOverridesOutOfFile(t *testing.T) {
	t.Setenv("TASKFLOW_STORAGE_DRIVER", "memory")
	t.Setenv("TASKFLOW_SERVER_ADDR", ":9999")
	path := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := runRoot(t, "config", "set-calendar", "Work", "--config", path); err != nil {
		t.Fatalf("set-calendar failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	written := string(data)
	if !strings.Contains(written, "name: Work") {
		t.Errorf("Expected calendar name in config, got:\n%s", written)
	}
	if strings.Contains(written, "memory") || strings.Contains(written, "9999") {
		t.Errorf("Environment overrides leaked into config file:\n%s", written)
	}
}

func TestCLIConfigSetWritesDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := runRoot(t, "config", "set-storage", "sqlite"); err != nil {
		t.Fatalf("set-storage failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "taskflow", "config.yaml"))
	if err != nil {
		t.Fatalf("Expected config under HOME: %v", err)
	}
	if !strings.Contains(string(data), "driver: sqlite") {
		t.Errorf("Expected sqlite driver, got:\n%s", data)
	}
}
