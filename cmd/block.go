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

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/internal/ioblock"
	"github.com/spf13/cobra"
)

// getBlockCmd returns the block command.
func getBlockCmd() *cobra.Command {
	var hierarchyDir string

	blockCmd := &cobra.Command{
		Use:   "block",
		Short: "Compute candidate pairs from the anonymized projections",
		Long: `Block is the first classifier of the pipeline. It reads the two
anonymized projections from the work directory, groups each into
equivalence classes and emits the Cartesian product of every pair of
classes whose quasi-identifiers are compatible: equal, or covering each
other in the attribute's generalization hierarchy (interval containment
for the numeric age attribute).

Artifacts written:
  - classifier_data/candidate_links.zip with the candidate pair set
  - per-holder candidate index lists consumed by the encode stage

Examples:
  pprl block --hierarchy-dir hierarchies/
  pprl block --hierarchy-dir hierarchies/ -k 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pipelineOpts(cmd))
			b := ioblock.New(cfg, schema, hierarchyDir)
			if err := b.Block(context.Background()); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	blockCmd.Flags().StringVarP(&hierarchyDir, "hierarchy-dir", "d", "",
		"directory with hierarchy_<attribute>_*.csv files")
	_ = blockCmd.MarkFlagRequired("hierarchy-dir")
	addKFlag(blockCmd)

	return blockCmd
}
