/*
Copyright © 2025 The pprl authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/internal/iofs"
	"github.com/recordlink/pprl/internal/iologger"
	app "github.com/recordlink/pprl/pkg"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/recordlink/pprl/pkg/linkage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
	schema  *linkage.Schema

	workDir string
	jobs    int
)

// getRootCmd creates and returns the root command.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "pprl",
		Short:   "pprl links records of two parties without sharing plaintext",
		Long: `pprl is a command-line tool for privacy-preserving record linkage
between two mutually distrusting data holders A and B. Neither party
reveals plaintext identifiers to the other or to the matching
intermediary.

The pipeline has three stages:

- Anonymization: Mondrian k-anonymity over quasi-identifiers.
- Blocking: candidate pairs from hierarchy-compatible equivalence classes.
- Matching: Dice comparison of Bloom-encoded identifiers.

Each stage reads and writes file artifacts under the work directory, so
stages can run on separate machines by moving files between them.

Configuration is managed through a config.yaml file, environment
variables (with PPRL_ prefix), and command-line flags. The attribute
schema of the datasets lives in linkage.yaml.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "pprl version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for pprl")

	rootCmd.PersistentFlags().StringVarP(&workDir, "work-dir", "w", ".",
		"directory for pipeline artifacts")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0,
		"number of concurrent workers")

	// Add subcommands
	rootCmd.AddCommand(getAnonymizeCmd())
	rootCmd.AddCommand(getBlockCmd())
	rootCmd.AddCommand(getEncodeCmd())
	rootCmd.AddCommand(getCompareCmd())
	rootCmd.AddCommand(getClassifyCmd())
	rootCmd.AddCommand(getRunCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults ASAP so all
	// subsequent logs are captured. Will be reconfigured later
	// with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Bootstrap process started")

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		slog.Error("Failed to ensure config file", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureLinkageFile(homeDir); err != nil {
		slog.Error("Failed to ensure linkage file", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	runtimeOpts := []config.Option{
		config.OptHomeDir(homeDir),
		config.OptWorkDir(workDir),
	}
	if jobs > 0 {
		runtimeOpts = append(runtimeOpts, config.OptJobsNumber(jobs))
	}
	cfg.Update(runtimeOpts)

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		slog.Error("Failed to reconfigure logging", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	if schema, err = linkage.LoadSchema(
		config.LinkageFilePath(homeDir)); err != nil {
		slog.Error("Failed to load linkage schema", "error", err)
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded successfully",
		"config_file", config.ConfigFilePath(homeDir),
		"linkage_file", config.LinkageFilePath(homeDir),
		"k", cfg.Pipeline.K,
		"threshold", cfg.Pipeline.Threshold,
		"bloom_size", cfg.Pipeline.BloomSize,
		"num_hash", cfg.Pipeline.NumHash,
		"work_dir", cfg.WorkDir,
		"jobs_number", cfg.JobsNumber)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
// Appends to existing log file to preserve bootstrap logs.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	err := iologger.Init(logDir, cfg.Log, true)
	if err != nil {
		slog.Error("Failed to reconfigure logger", "error", err, "log_dir", logDir)
		return err
	}
	return nil
}

// Execute adds all child commands to the root command and
// sets flags appropriately. This is called by main.main().
// It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd := getRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)

	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		slog.Error("Failed to read config file", "error", err, "config_path", cfgPath)
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		slog.Error("Failed to unmarshal config", "error", err, "config_path", cfgPath)
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.

	v.SetEnvPrefix("PPRL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Pipeline configuration
	_ = v.BindEnv("pipeline.k", "PPRL_PIPELINE_K")
	_ = v.BindEnv("pipeline.threshold", "PPRL_PIPELINE_THRESHOLD")
	_ = v.BindEnv("pipeline.bloom_size", "PPRL_PIPELINE_BLOOM_SIZE")
	_ = v.BindEnv("pipeline.num_hash", "PPRL_PIPELINE_NUM_HASH")
	_ = v.BindEnv("pipeline.secret_key", "PPRL_PIPELINE_SECRET_KEY")

	// Log configuration
	_ = v.BindEnv("log.level", "PPRL_LOG_LEVEL")
	_ = v.BindEnv("log.format", "PPRL_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "PPRL_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "PPRL_JOBS_NUMBER")
}
