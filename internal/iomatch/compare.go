package iomatch

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/pkg/bloom"
	"golang.org/x/sync/errgroup"
)

// Compare computes the per-field Dice vector of every candidate pair
// and persists the full similarity table. Pair order in the output
// follows the candidate-links artifact.
func (m *matcher) Compare(ctx context.Context) error {
	start := time.Now()
	gn.Info("Comparing encoded identifiers of candidate pairs...")

	encA, err := m.loadEncoded(m.paths.EncodedFile("A"))
	if err != nil {
		return err
	}
	encB, err := m.loadEncoded(m.paths.EncodedFile("B"))
	if err != nil {
		return err
	}

	linksPath := m.paths.CandidateLinksFile()
	links, err := iocsv.Load(linksPath)
	if err != nil {
		return err
	}
	if len(links.Columns) != 2 {
		return InputError(linksPath, "expected two index columns")
	}

	fields := m.schema.FieldNames()
	results := make([][]string, links.Len())

	bar := pb.Full.Start(links.Len())
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	g, ctx := errgroup.WithContext(ctx)
	chIn := make(chan int)
	jobs := max(1, m.cfg.JobsNumber)
	for range jobs {
		g.Go(func() error {
			for i := range chIn {
				row := links.Rows[i]
				ia, ib := row[0], row[1]
				setsA, ok := encA[ia]
				if !ok {
					return InputError(linksPath, "unknown A-side index "+ia)
				}
				setsB, ok := encB[ib]
				if !ok {
					return InputError(linksPath, "unknown B-side index "+ib)
				}
				out := make([]string, 2+len(fields))
				out[0], out[1] = ia, ib
				for f := range fields {
					d, err := bloom.Dice(setsA[f], setsB[f])
					if err != nil {
						return err
					}
					out[2+f] = strconv.FormatFloat(d, 'g', -1, 64)
				}
				results[i] = out
				bar.Increment()
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(chIn)
		for i := range links.Rows {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return err
	}

	out := iocsv.New(append([]string{"index_A", "index_B"}, fields...))
	out.Rows = results
	outPath := m.paths.ComparedLinksFile()
	if err = out.WriteZip(outPath); err != nil {
		return err
	}

	slog.Info("Candidate pairs compared",
		"pairs", humanize.Comma(int64(out.Len())), "path", outPath)
	gn.Message("Compared links saved at %s %s",
		outPath, gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
