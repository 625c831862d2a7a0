package iomatch

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/recordlink/pprl/internal/iocsv"
)

// Classify reads the persisted comparison table and keeps the pairs
// whose lowest field similarity reaches the threshold. The comparison
// is non-strict (>=) on every field.
func (m *matcher) Classify(ctx context.Context) error {
	start := time.Now()
	threshold := m.cfg.Pipeline.Threshold
	gn.Info("Classifying compared links with threshold <em>%v</em>...",
		threshold)

	comparedPath := m.paths.ComparedLinksFile()
	compared, err := iocsv.Load(comparedPath)
	if err != nil {
		return err
	}
	if len(compared.Columns) < 3 {
		return InputError(comparedPath, "no similarity columns")
	}

	matched := iocsv.New(compared.Columns)
	for i, row := range compared.Rows {
		if err = ctx.Err(); err != nil {
			return err
		}
		keep := true
		for j := 2; j < len(row); j++ {
			d, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return SimilarityParseError(comparedPath, i, err)
			}
			if d < threshold {
				keep = false
				break
			}
		}
		if keep {
			matched.AppendRow(row)
		}
	}

	outPath := m.paths.MatchedLinksFile()
	if err = matched.Write(outPath); err != nil {
		return err
	}

	slog.Info("Links classified",
		"threshold", threshold,
		"matched", humanize.Comma(int64(matched.Len())),
		"compared", humanize.Comma(int64(compared.Len())),
		"path", outPath,
	)
	gn.Message("Matched links saved at %s %s",
		outPath, gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
