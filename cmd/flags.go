package cmd

import (
	"fmt"
	"os"

	app "github.com/recordlink/pprl/pkg"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// pipelineOpts converts the stage flags that were explicitly set into
// config options, so flags keep the highest precedence.
func pipelineOpts(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("k") {
		k, _ := cmd.Flags().GetInt("k")
		res = append(res, config.OptK(k))
	}
	if cmd.Flags().Changed("threshold") {
		t, _ := cmd.Flags().GetFloat64("threshold")
		res = append(res, config.OptThreshold(t))
	}
	if cmd.Flags().Changed("bloom-size") {
		m, _ := cmd.Flags().GetInt("bloom-size")
		res = append(res, config.OptBloomSize(m))
	}
	if cmd.Flags().Changed("num-hash") {
		n, _ := cmd.Flags().GetInt("num-hash")
		res = append(res, config.OptNumHash(n))
	}
	if cmd.Flags().Changed("secret-key") {
		s, _ := cmd.Flags().GetString("secret-key")
		res = append(res, config.OptSecretKey(s))
	}
	return res
}

func addKFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("k", "k", 0, "k-anonymity parameter")
}

func addThresholdFlag(cmd *cobra.Command) {
	cmd.Flags().Float64P("threshold", "t", 0,
		"Dice-coefficient match threshold")
}

func addBloomFlags(cmd *cobra.Command) {
	cmd.Flags().Int("bloom-size", 0, "Bloom filter length in bits")
	cmd.Flags().Int("num-hash", 0, "number of hash functions per q-gram")
	cmd.Flags().String("secret-key", "", "shared HMAC key of both holders")
}
