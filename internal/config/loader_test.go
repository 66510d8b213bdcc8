package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, root, content string) string {
	t.Helper()
	path := filepath.Join(root, DirName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func withHome(t *testing.T, dir string) {
	t.Helper()
	restore := SetUserHomeDirForTest(func() (string, error) { return dir, nil })
	t.Cleanup(restore)
}

func TestLoadConfigMergesGlobalAndProject(t *testing.T) {
	homeDir := t.TempDir()
	projectDir := t.TempDir()
	withHome(t, homeDir)

	writeConfig(t, homeDir, `schemaVersion: 1
storage:
  backend: sqlite
ai:
  model: gemini-pro
  timeoutSeconds: 90
log:
  level: debug
`)
	writeConfig(t, projectDir, `ai:
  timeoutSeconds: 15
maps:
  enabled: false
`)

	resolved, err := LoadConfig(projectDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if resolved.Storage.Backend != StorageBackendSQLite {
		t.Fatalf("backend = %q, want sqlite", resolved.Storage.Backend)
	}
	if resolved.AI.Model != "gemini-pro" {
		t.Fatalf("model = %q, want gemini-pro", resolved.AI.Model)
	}
	if resolved.AI.TimeoutSeconds != 15 {
		t.Fatalf("timeout = %d, want 15", resolved.AI.TimeoutSeconds)
	}
	if resolved.Maps.Enabled {
		t.Fatalf("maps.enabled = true, want false")
	}
	if resolved.Log.Level != "debug" {
		t.Fatalf("log level = %q, want debug", resolved.Log.Level)
	}
	if resolved.Report.Dir != DefaultReportDir {
		t.Fatalf("report dir = %q, want default", resolved.Report.Dir)
	}
}

func TestLoadConfigDefaultsWithoutFiles(t *testing.T) {
	withHome(t, t.TempDir())
	resolved, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if resolved != DefaultResolvedConfig() {
		t.Fatalf("resolved = %+v, want defaults", resolved)
	}
}

func TestLoadConfigIgnoresBrokenLayers(t *testing.T) {
	homeDir := t.TempDir()
	projectDir := t.TempDir()
	withHome(t, homeDir)

	writeConfig(t, homeDir, "ai: [not, a, map\n")
	writeConfig(t, projectDir, "schemaVersion: 99\nai:\n  model: future\n")

	resolved, err := LoadConfig(projectDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if resolved.AI.Model != DefaultAIModel {
		t.Fatalf("model = %q, want default", resolved.AI.Model)
	}
}

func TestLoadConfigHomeUnavailable(t *testing.T) {
	restore := SetUserHomeDirForTest(func() (string, error) { return "", errors.New("no home") })
	t.Cleanup(restore)

	if _, present, err := LoadGlobalConfig(); err != nil || present {
		t.Fatalf("LoadGlobalConfig = present %v, err %v", present, err)
	}
	if GlobalConfigPath() != "" {
		t.Fatalf("expected empty global path")
	}
}

func TestLoadProjectConfigEmptyRoot(t *testing.T) {
	if _, present, err := LoadProjectConfig(""); err != nil || present {
		t.Fatalf("LoadProjectConfig(\"\") = present %v, err %v", present, err)
	}
}
