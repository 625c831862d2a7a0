// Package ioblock implements the first classifier of the pipeline.
// It consumes the two anonymized projections, groups them into
// equivalence classes and emits candidate pairs for every pair of
// classes whose quasi-identifiers are compatible under the
// generalization hierarchies.
package ioblock

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/recordlink/pprl/pkg/hierarchy"
	"github.com/recordlink/pprl/pkg/lifecycle"
	"github.com/recordlink/pprl/pkg/linkage"
)

type blocker struct {
	cfg          *config.Config
	schema       *linkage.Schema
	hierarchyDir string
	paths        linkage.Paths
}

// New creates a Blocker. The hierarchy directory holds one
// hierarchy_<attribute>_*.csv file per categorical quasi-identifier.
func New(
	cfg *config.Config,
	schema *linkage.Schema,
	hierarchyDir string,
) lifecycle.Blocker {
	res := blocker{
		cfg:          cfg,
		schema:       schema,
		hierarchyDir: hierarchyDir,
		paths:        linkage.Paths{WorkDir: cfg.WorkDir, K: cfg.Pipeline.K},
	}
	return &res
}

// class is one equivalence set of an anonymized projection: all rows
// sharing the same quasi-identifier tuple. Any member represents the
// class during covering checks.
type class struct {
	rep     []string
	indices []string
}

func (b *blocker) Block(ctx context.Context) error {
	start := time.Now()
	pathA := b.paths.ProjectionFile("A")
	pathB := b.paths.ProjectionFile("B")
	gn.Info("Finding candidate links for <em>%s</em> and <em>%s</em>...",
		pathA, pathB)

	trees, err := hierarchy.LoadDir(b.hierarchyDir)
	if err != nil {
		return err
	}
	for _, q := range b.schema.QuasiIdentifiers {
		if q == b.schema.AgeColumn {
			continue
		}
		if _, ok := trees[q]; !ok {
			return InputError(b.hierarchyDir, "no hierarchy for attribute "+q)
		}
	}

	classesA, err := b.partition(pathA)
	if err != nil {
		return err
	}
	classesB, err := b.partition(pathB)
	if err != nil {
		return err
	}
	slog.Info("Projections partitioned",
		"classes_a", len(classesA), "classes_b", len(classesB))

	links := iocsv.New([]string{"index_A", "index_B"})
	seenA := make(map[string]struct{})
	seenB := make(map[string]struct{})
	for _, ca := range classesA {
		if err = ctx.Err(); err != nil {
			return err
		}
		for _, cb := range classesB {
			ok, err := b.compatible(trees, ca.rep, cb.rep)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			for _, ia := range ca.indices {
				seenA[ia] = struct{}{}
				for _, ib := range cb.indices {
					links.AppendRow([]string{ia, ib})
					seenB[ib] = struct{}{}
				}
			}
		}
	}

	if err = gnsys.MakeDir(b.paths.ClassifierDir()); err != nil {
		return CreateDirError(b.paths.ClassifierDir(), err)
	}
	linksPath := b.paths.CandidateLinksFile()
	if err = links.WriteZip(linksPath); err != nil {
		return err
	}
	if err = b.writeIndexSet("A", seenA); err != nil {
		return err
	}
	if err = b.writeIndexSet("B", seenB); err != nil {
		return err
	}

	slog.Info("Candidate links found",
		"pairs", humanize.Comma(int64(links.Len())),
		"records_a", humanize.Comma(int64(len(seenA))),
		"records_b", humanize.Comma(int64(len(seenB))),
	)
	gn.Message("Candidate links saved at %s %s",
		linksPath, gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

// partition groups a projection into equivalence classes, keeping the
// first-seen order of classes for deterministic output.
func (b *blocker) partition(path string) ([]*class, error) {
	tbl, err := iocsv.Load(path)
	if err != nil {
		return nil, err
	}
	idxCol, ok := tbl.Col(b.schema.IndexColumn)
	if !ok {
		return nil, InputError(path, "missing index column")
	}
	qCols := make([]int, len(b.schema.QuasiIdentifiers))
	for i, q := range b.schema.QuasiIdentifiers {
		j, ok := tbl.Col(q)
		if !ok {
			return nil, InputError(path, "missing quasi-identifier "+q)
		}
		qCols[i] = j
	}

	byKey := make(map[string]*class)
	var res []*class
	for _, row := range tbl.Rows {
		key := make([]string, len(qCols))
		for i, j := range qCols {
			key[i] = row[j]
		}
		k := strings.Join(key, "\x1f")
		c, ok := byKey[k]
		if !ok {
			c = &class{rep: key}
			byKey[k] = c
			res = append(res, c)
		}
		c.indices = append(c.indices, row[idxCol])
	}
	return res, nil
}

// compatible checks every quasi-identifier of two class
// representatives. An attribute is compatible when either value covers
// the other in its hierarchy or they are equal; the age attribute uses
// interval containment. Labels absent from a hierarchy are fatal.
func (b *blocker) compatible(
	trees map[string]*hierarchy.Tree, repA, repB []string,
) (bool, error) {
	for i, q := range b.schema.QuasiIdentifiers {
		va, vb := repA[i], repB[i]
		if q == b.schema.AgeColumn {
			if va == vb ||
				hierarchy.IntervalCovers(va, vb) ||
				hierarchy.IntervalCovers(vb, va) {
				continue
			}
			return false, nil
		}
		tree := trees[q]
		ab, err := tree.Covers(va, vb)
		if err != nil {
			return false, err
		}
		ba, err := tree.Covers(vb, va)
		if err != nil {
			return false, err
		}
		if ab || ba || va == vb {
			continue
		}
		return false, nil
	}
	return true, nil
}

// writeIndexSet stores the sorted unique indices of one holder that
// appear in at least one candidate pair.
func (b *blocker) writeIndexSet(
	holder string, seen map[string]struct{},
) error {
	indices := make([]string, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Strings(indices)

	out := iocsv.New([]string{b.schema.IndexColumn})
	for _, idx := range indices {
		out.AppendRow([]string{idx})
	}
	dir := b.paths.HolderDir(holder)
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	path := b.paths.CandidateIndexFile(holder)
	if err := out.Write(path); err != nil {
		return err
	}
	slog.Info("Candidate record indices saved",
		"holder", holder, "path", path, "records", out.Len())
	return nil
}
