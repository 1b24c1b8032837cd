// internal/commands/root_test.go
package promptforge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/nerrospl/promptforge/internal/logging"
)

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"nonexistent"})
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"promptforge\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"status", "models", "enhance", "analyze", "show"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("subcommand %q is not registered: %v", name, err)
		}
	}

	for _, path := range [][]string{
		{"models", "list"},
		{"models", "pull"},
		{"models", "rm"},
		{"models", "unload"},
		{"show", "config"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("subcommand %v is not registered: %v", path, err)
		}
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestPersistentPreRunELoadsConfig(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "promptforge.log")
	configPath := writeTempConfig(t, fmt.Sprintf(`{
		"daemonUrl": "http://192.168.1.20:11434",
		"modelTool": "/opt/ollama/bin/ollama",
		"checkTimeout": 4,
		"logFile": %q
	}`, logPath))

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		currentConfig = nil
		_ = logging.Close()
	})

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig returned nil after PersistentPreRunE")
	}
	if cfg.URL() != "http://192.168.1.20:11434" {
		t.Errorf("URL()=%q", cfg.URL())
	}
	if cfg.Tool() != "/opt/ollama/bin/ollama" {
		t.Errorf("Tool()=%q", cfg.Tool())
	}
	if cfg.CheckTimeoutSeconds != 4 {
		t.Errorf("CheckTimeoutSeconds=%d want 4", cfg.CheckTimeoutSeconds)
	}
	if cfg.ConfigPath != configPath {
		t.Errorf("ConfigPath=%q want %q", cfg.ConfigPath, configPath)
	}
}

func TestPersistentPreRunEToleratesMissingConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	prevCfgFile := cfgFile
	cfgFile = missing
	viper.SetConfigFile(missing)
	logFlag := rootCmd.PersistentFlags().Lookup("logFile")
	_ = logFlag.Value.Set(filepath.Join(t.TempDir(), "promptforge.log"))
	logFlag.Changed = true
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		_ = logFlag.Value.Set(logFlag.DefValue)
		logFlag.Changed = false
		currentConfig = nil
		_ = logging.Close()
	})

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("missing config must not fail startup: %v", err)
	}
	if GetConfig() == nil {
		t.Fatal("GetConfig returned nil, defaults should still apply")
	}
}
