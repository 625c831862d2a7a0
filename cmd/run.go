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
	"context"
	"time"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/internal/ioblock"
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/internal/ioholder"
	"github.com/recordlink/pprl/internal/iomatch"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/recordlink/pprl/pkg/linkage"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var inputA, inputB, hierarchyDir string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the complete linkage pipeline end to end",
		Long: `Run executes all pipeline stages in order:

  1. Anonymize both plaintext tables (Mondrian k-anonymity).
  2. Block the two projections into candidate pairs.
  3. Bloom-encode identifiers of the candidate records on both sides.
  4. Compare candidate pairs and classify them by threshold.

A run manifest with parameters and artifact fingerprints is written at
the end.

Examples:
  pprl run --input-a dataset_A.csv --input-b dataset_B.csv \
      --hierarchy-dir hierarchies/
  pprl run -k 10 --threshold 0.7 --input-a a.csv --input-b b.csv \
      --hierarchy-dir hierarchies/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pipelineOpts(cmd))
			err := runPipeline(
				context.Background(), cfg, schema,
				inputA, inputB, hierarchyDir,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	runCmd.Flags().StringVar(&inputA, "input-a", "",
		"path to data holder A's plaintext CSV")
	runCmd.Flags().StringVar(&inputB, "input-b", "",
		"path to data holder B's plaintext CSV")
	runCmd.Flags().StringVarP(&hierarchyDir, "hierarchy-dir", "d", "",
		"directory with hierarchy_<attribute>_*.csv files")
	_ = runCmd.MarkFlagRequired("input-a")
	_ = runCmd.MarkFlagRequired("input-b")
	_ = runCmd.MarkFlagRequired("hierarchy-dir")
	addKFlag(runCmd)
	addThresholdFlag(runCmd)
	addBloomFlags(runCmd)

	return runCmd
}

// runPipeline drives the stages in order. Every stage reads only the
// artifacts of earlier stages, so a failure leaves the completed
// artifacts usable for a partial restart.
func runPipeline(
	ctx context.Context,
	cfg *config.Config,
	schema *linkage.Schema,
	inputA, inputB, hierarchyDir string,
) error {
	start := time.Now()
	manifest := linkage.NewManifest(start)
	manifest.K = cfg.Pipeline.K
	manifest.Threshold = cfg.Pipeline.Threshold
	manifest.BloomSize = cfg.Pipeline.BloomSize
	manifest.NumHash = cfg.Pipeline.NumHash

	holderA := ioholder.New(cfg, schema, "A", inputA)
	holderB := ioholder.New(cfg, schema, "B", inputB)

	if err := holderA.Anonymize(ctx); err != nil {
		return err
	}
	if err := holderB.Anonymize(ctx); err != nil {
		return err
	}

	blocker := ioblock.New(cfg, schema, hierarchyDir)
	if err := blocker.Block(ctx); err != nil {
		return err
	}

	if err := holderA.EncodeIdentifiers(ctx); err != nil {
		return err
	}
	if err := holderB.EncodeIdentifiers(ctx); err != nil {
		return err
	}

	matcher := iomatch.New(cfg, schema)
	if err := matcher.Compare(ctx); err != nil {
		return err
	}
	if err := matcher.Classify(ctx); err != nil {
		return err
	}

	manifest.FinishedAt = time.Now()
	paths := linkage.Paths{WorkDir: cfg.WorkDir, K: cfg.Pipeline.K}
	for _, a := range []struct{ name, path string }{
		{"projection_a", paths.ProjectionFile("A")},
		{"projection_b", paths.ProjectionFile("B")},
		{"candidate_links", paths.CandidateLinksFile()},
		{"encoded_a", paths.EncodedFile("A")},
		{"encoded_b", paths.EncodedFile("B")},
		{"compared_links", paths.ComparedLinksFile()},
		{"matched_links", paths.MatchedLinksFile()},
	} {
		rows := 0
		if tbl, err := iocsv.Load(a.path); err == nil {
			rows = tbl.Len()
		}
		manifest.AddArtifact(a.name, a.path, rows)
	}
	if err := manifest.Write(paths.ManifestFile()); err != nil {
		return err
	}

	gn.Info("Pipeline run <em>%s</em> complete. Manifest at %s",
		manifest.RunID, paths.ManifestFile())
	return nil
}
