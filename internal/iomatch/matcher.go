// Package iomatch implements the second classifier of the pipeline.
// Compare computes Dice-coefficient vectors for every candidate pair
// over the Bloom-encoded tables; Classify filters the persisted
// comparison table by threshold. The split lets one expensive compare
// run serve many thresholds.
package iomatch

import (
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/pkg/bloom"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/recordlink/pprl/pkg/lifecycle"
	"github.com/recordlink/pprl/pkg/linkage"
)

type matcher struct {
	cfg    *config.Config
	schema *linkage.Schema
	paths  linkage.Paths
}

// New creates a Matcher over the artifacts of the current work dir.
func New(cfg *config.Config, schema *linkage.Schema) lifecycle.Matcher {
	res := matcher{
		cfg:    cfg,
		schema: schema,
		paths:  linkage.Paths{WorkDir: cfg.WorkDir, K: cfg.Pipeline.K},
	}
	return &res
}

// loadEncoded parses one encoded-identifiers artifact into per-field
// packed bitsets keyed by record index. Field order follows the
// schema.
func (m *matcher) loadEncoded(path string) (map[string][]*bloom.Bitset, error) {
	tbl, err := iocsv.Load(path)
	if err != nil {
		return nil, err
	}
	idxCol, ok := tbl.Col(m.schema.IndexColumn)
	if !ok {
		return nil, InputError(path, "missing index column")
	}
	fields := m.schema.FieldNames()
	cols := make([]int, len(fields))
	for i, f := range fields {
		j, ok := tbl.Col(f)
		if !ok {
			return nil, InputError(path, "missing encoded field "+f)
		}
		cols[i] = j
	}

	res := make(map[string][]*bloom.Bitset, tbl.Len())
	for _, row := range tbl.Rows {
		sets := make([]*bloom.Bitset, len(cols))
		for i, j := range cols {
			sets[i], err = bloom.ParseBitset(row[j])
			if err != nil {
				return nil, err
			}
		}
		res[row[idxCol]] = sets
	}
	return res, nil
}
