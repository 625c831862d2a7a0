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

// getClassifyCmd returns the classify command.
func getClassifyCmd() *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Filter compared links by the match threshold",
		Long: `Classify reads compared_links.zip and keeps the pairs whose lowest
field similarity is at or above the threshold. The result is written to
matched_links.csv.

Because classify only reads the comparison artifact, it can rerun
cheaply at different thresholds without re-encoding or re-comparing.

Examples:
  pprl classify
  pprl classify --threshold 0.7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pipelineOpts(cmd))
			m := iomatch.New(cfg, schema)
			if err := m.Classify(context.Background()); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	addKFlag(classifyCmd)
	addThresholdFlag(classifyCmd)

	return classifyCmd
}
