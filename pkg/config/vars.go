package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "pprl"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/pprl by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/pprl/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/pprl/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// LinkageFilePath returns the full path to the linkage.yaml file that
// declares the attribute schema of the datasets.
// Returns ~/.config/pprl/linkage.yaml by default.
func LinkageFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "linkage.yaml")
}
