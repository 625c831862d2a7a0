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

// getEncodeCmd returns the encode command.
func getEncodeCmd() *cobra.Command {
	var holder, input string

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Bloom-encode a data holder's identifier columns",
		Long: `Encode turns the identifier columns of one data holder's plaintext
table into keyed Bloom-filter bit strings.

Only the records listed in the holder's candidate index (written by the
block stage) are encoded. Composite fields declared in linkage.yaml are
concatenated before encoding. The encoded table is the only identifier
material the holder shares with the matcher.

Examples:
  pprl encode --holder A --input dataset_A.csv
  pprl encode --holder B --input dataset_B.csv --bloom-size 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pipelineOpts(cmd))
			dh := ioholder.New(cfg, schema, holder, input)
			if err := dh.EncodeIdentifiers(context.Background()); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	encodeCmd.Flags().StringVar(&holder, "holder", "A",
		"data holder name (A or B)")
	encodeCmd.Flags().StringVarP(&input, "input", "i", "",
		"path to the plaintext CSV")
	_ = encodeCmd.MarkFlagRequired("input")
	addKFlag(encodeCmd)
	addBloomFlags(encodeCmd)

	return encodeCmd
}
