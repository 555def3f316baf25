package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/storm/internal/core/config"
	"github.com/hay-kot/storm/pkg/utils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Stderr carries printer output and stderr logs. The editor holds it
	// while the full screen program runs.
	Stderr *utils.DeferredWriter
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "storm", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/storm/storm.log
// On Linux: $XDG_STATE_HOME/storm/storm.log (defaults to ~/.local/state/storm/storm.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "storm", "storm.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "storm", "storm.log")
	}

	return filepath.Join(home, ".local", "state", "storm", "storm.log")
}
