package ioholder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/pkg/bloom"
	"golang.org/x/sync/errgroup"
)

// EncodeIdentifiers Bloom-encodes the identifier fields of the records
// that survived blocking. The output row order follows the plaintext
// input, so the artifact is deterministic.
func (d *dataHolder) EncodeIdentifiers(ctx context.Context) error {
	start := time.Now()
	gn.Info("Encoding identifiers for dataholder <em>%s</em>...", d.holder)

	enc, err := bloom.NewEncoder(
		d.cfg.Pipeline.BloomSize,
		d.cfg.Pipeline.NumHash,
		[]byte(d.cfg.Pipeline.SecretKey),
	)
	if err != nil {
		return err
	}

	tbl, err := iocsv.Load(d.inputPath)
	if err != nil {
		return err
	}
	candidates, err := d.candidateSet()
	if err != nil {
		return err
	}

	idxCol, ok := tbl.Col(d.schema.IndexColumn)
	if !ok {
		return InputError(d.inputPath, "missing index column")
	}
	fieldCols := make([][]int, len(d.schema.EncodedFields))
	for i, f := range d.schema.EncodedFields {
		for _, c := range f.Columns {
			j, ok := tbl.Col(c)
			if !ok {
				return InputError(d.inputPath, "missing identifier column "+c)
			}
			fieldCols[i] = append(fieldCols[i], j)
		}
	}

	var kept [][]string
	for _, row := range tbl.Rows {
		if _, ok := candidates[row[idxCol]]; ok {
			kept = append(kept, row)
		}
	}

	encoded := make([][]string, len(kept))
	g, ctx := errgroup.WithContext(ctx)
	chIn := make(chan int)
	jobs := max(1, d.cfg.JobsNumber)
	for range jobs {
		g.Go(func() error {
			for i := range chIn {
				row := kept[i]
				out := make([]string, 1+len(fieldCols))
				out[0] = row[idxCol]
				for f, cols := range fieldCols {
					var sb strings.Builder
					for _, c := range cols {
						sb.WriteString(row[c])
					}
					out[1+f] = enc.Encode(sb.String())
				}
				encoded[i] = out
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(chIn)
		for i := range kept {
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

	out := iocsv.New(append(
		[]string{d.schema.IndexColumn}, d.schema.FieldNames()...))
	out.Rows = encoded

	if err = d.ensureDir(); err != nil {
		return err
	}
	outPath := d.paths.EncodedFile(d.holder)
	if err = out.WriteZip(outPath); err != nil {
		return err
	}

	slog.Info("Encoded identifiers written",
		"holder", d.holder,
		"path", outPath,
		"rows", humanize.Comma(int64(out.Len())),
		"bloom_size", d.cfg.Pipeline.BloomSize,
		"num_hash", d.cfg.Pipeline.NumHash,
	)
	gn.Message("Encoded identifiers for dataholder %s saved at %s %s",
		d.holder, outPath,
		gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

// candidateSet loads the per-holder index list written by the blocker.
// A missing file means blocking did not run; every record is encoded.
func (d *dataHolder) candidateSet() (map[string]struct{}, error) {
	path := d.paths.CandidateIndexFile(d.holder)
	tbl, err := iocsv.Read(path)
	if err != nil {
		slog.Warn("No candidate index, encoding all records",
			"holder", d.holder, "path", path)
		all, err := iocsv.Load(d.inputPath)
		if err != nil {
			return nil, err
		}
		idxCol, ok := all.Col(d.schema.IndexColumn)
		if !ok {
			return nil, InputError(d.inputPath, "missing index column")
		}
		res := make(map[string]struct{}, all.Len())
		for _, row := range all.Rows {
			res[row[idxCol]] = struct{}{}
		}
		return res, nil
	}

	idxCol, ok := tbl.Col(d.schema.IndexColumn)
	if !ok {
		return nil, InputError(path, "missing index column")
	}
	res := make(map[string]struct{}, tbl.Len())
	for _, row := range tbl.Rows {
		res[row[idxCol]] = struct{}{}
	}
	return res, nil
}
