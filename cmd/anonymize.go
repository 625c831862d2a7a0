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
	"github.com/recordlink/pprl/internal/ioholder"
	"github.com/spf13/cobra"
)

// getAnonymizeCmd returns the anonymize command.
func getAnonymizeCmd() *cobra.Command {
	var holder, input string

	anonymizeCmd := &cobra.Command{
		Use:   "anonymize",
		Short: "Anonymize a data holder's plaintext table",
		Long: `Anonymize runs Mondrian k-anonymization over one data holder's
plaintext table.

Two artifacts are written under the holder's directory:
  1. The full anonymized table, kept by the holder.
  2. The projection restricted to index and quasi-identifiers, which is
     the only table the holder shares with the blocker.

Examples:
  pprl anonymize --holder A --input dataset_A.csv
  pprl anonymize --holder B --input dataset_B.csv -k 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pipelineOpts(cmd))
			dh := ioholder.New(cfg, schema, holder, input)
			if err := dh.Anonymize(context.Background()); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	anonymizeCmd.Flags().StringVar(&holder, "holder", "A",
		"data holder name (A or B)")
	anonymizeCmd.Flags().StringVarP(&input, "input", "i", "",
		"path to the plaintext CSV")
	_ = anonymizeCmd.MarkFlagRequired("input")
	addKFlag(anonymizeCmd)

	return anonymizeCmd
}
