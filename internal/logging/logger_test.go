package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// resetState clears package-level logging state so each test starts clean.
func resetState() {
	CloseAll()
	loggers = make(map[Category]*Logger)
	logsDir = ""
	workspace = ""
	config = loggingConfig{}
	logLevel = LevelDebug
}

func writeTestConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, ".errlens")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

// TestAllCategoriesLog tests that all categories create log files when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()
	writeTestConfig(t, tempDir, `{
		"logging": {
			"level": "debug",
			"debug_mode": true,
			"categories": {
				"boot": true,
				"exec": true,
				"render": true,
				"api": true,
				"capture": true,
				"watch": true
			}
		}
	}`)

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	categories := []Category{
		CategoryBoot,
		CategoryExec,
		CategoryRender,
		CategoryAPI,
		CategoryCapture,
		CategoryWatch,
	}

	for _, cat := range categories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}

		logger := Get(cat)
		logger.Info("Test info message for %s", cat)
		logger.Debug("Test debug message for %s", cat)
		logger.Warn("Test warn message for %s", cat)
		logger.Error("Test error message for %s", cat)
	}

	// Also test convenience functions
	Boot("Convenience boot log")
	Exec("Convenience exec log")
	Render("Convenience render log")
	API("Convenience api log")
	Capture("Convenience capture log")
	Watch("Convenience watch log")

	CloseAll()

	logsPath := filepath.Join(tempDir, ".errlens", "logs")
	entries, err := os.ReadDir(logsPath)
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	for _, cat := range categories {
		found := false
		for _, entry := range entries {
			if strings.Contains(entry.Name(), string(cat)+".log") {
				found = true
				content, err := os.ReadFile(filepath.Join(logsPath, entry.Name()))
				if err != nil {
					t.Errorf("Failed to read log file for %s: %v", cat, err)
					continue
				}
				if len(content) == 0 {
					t.Errorf("Log file for %s is empty", cat)
				}
				break
			}
		}
		if !found {
			t.Errorf("No log file found for category: %s", cat)
		}
	}
}

// TestDebugModeDisabled tests that no logs are created when debug_mode is false
func TestDebugModeDisabled(t *testing.T) {
	tempDir := t.TempDir()
	writeTestConfig(t, tempDir, `{
		"logging": {
			"level": "debug",
			"debug_mode": false,
			"categories": {"boot": true, "exec": true}
		}
	}`)

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if IsDebugMode() {
		t.Error("Expected debug mode to be DISABLED (production mode)")
	}

	for _, cat := range []Category{CategoryBoot, CategoryExec, CategoryAPI} {
		if IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be DISABLED when debug_mode=false", cat)
		}
	}

	// Should all be no-ops
	Boot("This should NOT be logged")
	Exec("This should NOT be logged")
	logger := Get(CategoryBoot)
	logger.Info("This should NOT be logged")
	logger.Error("This should NOT be logged")

	CloseAll()

	logsPath := filepath.Join(tempDir, ".errlens", "logs")
	if entries, err := os.ReadDir(logsPath); err == nil && len(entries) > 0 {
		t.Errorf("Expected NO log files in production mode, but found %d files", len(entries))
	}
}

// TestCategoryToggle tests individual category enable/disable
func TestCategoryToggle(t *testing.T) {
	tempDir := t.TempDir()
	writeTestConfig(t, tempDir, `{
		"logging": {
			"level": "debug",
			"debug_mode": true,
			"categories": {
				"boot": true,
				"exec": true,
				"api": false,
				"watch": false
			}
		}
	}`)

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if !IsCategoryEnabled(CategoryBoot) {
		t.Error("boot should be enabled")
	}
	if !IsCategoryEnabled(CategoryExec) {
		t.Error("exec should be enabled")
	}
	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api should be DISABLED")
	}
	if IsCategoryEnabled(CategoryWatch) {
		t.Error("watch should be DISABLED")
	}

	// Category not in config defaults to enabled when debug_mode=true
	if !IsCategoryEnabled(CategoryRender) {
		t.Error("render (not in config) should default to enabled")
	}

	Boot("This SHOULD be logged")
	Exec("This SHOULD be logged")
	API("This should NOT be logged")
	Watch("This should NOT be logged")
	Render("This SHOULD be logged (default enabled)")

	CloseAll()

	logsPath := filepath.Join(tempDir, ".errlens", "logs")
	entries, _ := os.ReadDir(logsPath)

	var hasBoot, hasExec, hasAPI, hasWatch bool
	for _, e := range entries {
		name := e.Name()
		if strings.Contains(name, "boot") {
			hasBoot = true
		}
		if strings.Contains(name, "exec") {
			hasExec = true
		}
		if strings.Contains(name, "api") {
			hasAPI = true
		}
		if strings.Contains(name, "watch") {
			hasWatch = true
		}
	}

	if !hasBoot {
		t.Error("Expected boot log file")
	}
	if !hasExec {
		t.Error("Expected exec log file")
	}
	if hasAPI {
		t.Error("Should NOT have api log file (disabled)")
	}
	if hasWatch {
		t.Error("Should NOT have watch log file (disabled)")
	}
}

// TestTimerLogging tests the timing helper
func TestTimerLogging(t *testing.T) {
	tempDir := t.TempDir()
	writeTestConfig(t, tempDir, `{"logging": {"level": "debug", "debug_mode": true}}`)

	resetState()
	Initialize(tempDir)

	timer := StartTimer(CategoryExec, "TestOperation")
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Error("Timer should have recorded non-zero duration")
	}

	CloseAll()
}

// TestNoInitializeIsNoOp verifies logging calls are safe before Initialize.
func TestNoInitializeIsNoOp(t *testing.T) {
	resetState()

	// None of these should panic or create files in the working directory.
	Boot("uninitialized")
	ExecError("uninitialized")
	Get(CategoryAPI).Info("uninitialized")
}
