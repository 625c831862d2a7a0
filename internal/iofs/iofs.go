package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnsys"
	"github.com/recordlink/pprl/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed linkage.yaml
var LinkageYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := gnsys.MakeDir(v); err != nil {
			return CreateDirError(v, err)
		}
	}
	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureLinkageFile(homeDir string) error {
	linkagePath := config.LinkageFilePath(homeDir)

	// Check if linkage file already exists
	if _, err := os.Stat(linkagePath); err == nil {
		return nil
	}

	// Write embedded linkage.yaml to the config directory
	if err := os.WriteFile(linkagePath, []byte(LinkageYAML), 0644); err != nil {
		return CopyFileError(linkagePath, err)
	}

	return nil
}
