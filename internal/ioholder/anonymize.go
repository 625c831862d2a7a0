package ioholder

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/pkg/mondrian"
)

// Anonymize reads the plaintext table, applies Mondrian with the
// configured k, and writes the anonymized table plus the projection
// shared with the blocker (index + quasi-identifiers only).
func (d *dataHolder) Anonymize(ctx context.Context) error {
	start := time.Now()
	gn.Info("Anonymizing data for dataholder <em>%s</em>...", d.holder)

	tbl, err := iocsv.Load(d.inputPath)
	if err != nil {
		return err
	}
	if _, ok := tbl.Col(d.schema.IndexColumn); !ok {
		return InputError(d.inputPath, "missing index column")
	}

	anon := &mondrian.Anonymizer{
		QuasiIdentifiers: d.schema.QuasiIdentifiers,
		AgeColumn:        d.schema.AgeColumn,
		K:                d.cfg.Pipeline.K,
	}
	rows, err := anon.Anonymize(tbl.Columns, tbl.Rows)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = d.ensureDir(); err != nil {
		return err
	}

	out := iocsv.New(tbl.Columns)
	out.Rows = rows
	anonPath := d.paths.AnonymizedFile(d.holder)
	if err = out.Write(anonPath); err != nil {
		return err
	}
	slog.Info("Anonymized table written",
		"holder", d.holder, "path", anonPath, "rows", out.Len())

	// the blocker sees generalized quasi-identifiers only
	projCols := append(
		[]string{d.schema.IndexColumn}, d.schema.QuasiIdentifiers...)
	proj, err := out.Select(projCols)
	if err != nil {
		return ProjectionError(d.holder, err)
	}
	projPath := d.paths.ProjectionFile(d.holder)
	if err = proj.Write(projPath); err != nil {
		return err
	}

	gn.Message("Anonymized data for dataholder %s saved at %s %s",
		d.holder, projPath,
		gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
