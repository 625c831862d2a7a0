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
	"github.com/recordlink/pprl/internal/iomatch"
	"github.com/spf13/cobra"
)

// getCompareCmd returns the compare command.
func getCompareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare Bloom-encoded identifiers of candidate pairs",
		Long: `Compare computes the Dice-coefficient vector of every candidate
pair across all encoded fields and writes the full similarity table to
compared_links.zip.

The artifact is restartable: classify reads only this file, so one
compare run can be re-classified at many thresholds.

Examples:
  pprl compare
  pprl compare -j 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pipelineOpts(cmd))
			m := iomatch.New(cfg, schema)
			if err := m.Compare(context.Background()); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	addKFlag(compareCmd)

	return compareCmd
}
