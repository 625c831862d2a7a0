// Package mondrian implements multi-dimensional Mondrian
// k-anonymization over in-memory string tables.
//
// The algorithm recursively splits the table at the median of the
// quasi-identifier with the most distinct values, until a split would
// leave a half with fewer than k rows. Terminal partitions are
// summarized: the numeric dimension is generalized to a "[min-max]"
// range; categorical dimensions are returned verbatim. Every terminal
// partition holds at least k rows (unless the whole input is smaller),
// but rows of one partition that differ on a quasi-identifier left
// verbatim fall into equivalence classes smaller than k.
package mondrian

import (
	"fmt"
	"sort"
	"strconv"
)

// Anonymizer holds the parameters of one anonymization run.
type Anonymizer struct {
	// QuasiIdentifiers in declaration order; the order breaks ranking
	// ties, which pins the output deterministically.
	QuasiIdentifiers []string

	// AgeColumn is the numeric quasi-identifier generalized to ranges.
	// Empty means all quasi-identifiers are categorical.
	AgeColumn string

	// K is the anonymity parameter.
	K int
}

// Anonymize returns a copy of rows split into Mondrian partitions of at
// least K members each. Only the top-ranked dimension is summarized,
// and only when it is AgeColumn, so an equivalence class over all
// quasi-identifiers can be smaller than K. Column order is unchanged.
// When the input has fewer than K rows it forms a single summarized
// partition.
func (a *Anonymizer) Anonymize(
	columns []string, rows [][]string,
) ([][]string, error) {
	if a.K < 1 {
		return nil, InputError(fmt.Sprintf("k must be positive, got %d", a.K))
	}
	if len(a.QuasiIdentifiers) == 0 {
		return nil, InputError("no quasi-identifiers declared")
	}

	colIdx := make(map[string]int, len(columns))
	for i, c := range columns {
		colIdx[c] = i
	}
	for _, q := range a.QuasiIdentifiers {
		if _, ok := colIdx[q]; !ok {
			return nil, InputError(
				fmt.Sprintf("quasi-identifier %q is not a column", q))
		}
	}

	part := make([][]string, len(rows))
	for i, row := range rows {
		part[i] = append([]string{}, row...)
	}

	// The ranking is computed once for the whole table; recursive
	// calls inherit it.
	ranks := a.rank(part, colIdx)
	return a.anonymize(part, ranks, colIdx), nil
}

// rank orders quasi-identifiers by descending distinct-value count.
// The stable sort keeps declaration order on ties.
func (a *Anonymizer) rank(
	rows [][]string, colIdx map[string]int,
) []string {
	counts := make(map[string]int, len(a.QuasiIdentifiers))
	for _, q := range a.QuasiIdentifiers {
		idx := colIdx[q]
		distinct := make(map[string]struct{})
		for _, row := range rows {
			distinct[row[idx]] = struct{}{}
		}
		counts[q] = len(distinct)
	}
	ranked := append([]string{}, a.QuasiIdentifiers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

func (a *Anonymizer) anonymize(
	part [][]string, ranks []string, colIdx map[string]int,
) [][]string {
	dim := ranks[0]
	idx := colIdx[dim]

	a.sortBy(part, idx, dim == a.AgeColumn)
	mid := len(part) / 2
	left, right := part[:mid], part[mid:]
	if len(left) >= a.K && len(right) >= a.K {
		res := a.anonymize(left, ranks, colIdx)
		return append(res, a.anonymize(right, ranks, colIdx)...)
	}
	return a.summarize(part, dim, colIdx)
}

// summarize generalizes only the numeric dimension; categorical split
// dimensions are kept verbatim.
func (a *Anonymizer) summarize(
	part [][]string, dim string, colIdx map[string]int,
) [][]string {
	if dim != a.AgeColumn || len(part) == 0 {
		return part
	}
	idx := colIdx[dim]
	lo, hi := part[0][idx], part[len(part)-1][idx]
	if lo == hi {
		return part
	}
	s := fmt.Sprintf("[%s-%s]", lo, hi)
	for _, row := range part {
		row[idx] = s
	}
	return part
}

// sortBy sorts the partition by one column. The numeric column sorts
// by integer value; everything else lexicographically. Stability keeps
// equal keys in input order.
func (a *Anonymizer) sortBy(part [][]string, idx int, numeric bool) {
	if numeric {
		sort.SliceStable(part, func(i, j int) bool {
			vi, erri := strconv.Atoi(part[i][idx])
			vj, errj := strconv.Atoi(part[j][idx])
			if erri == nil && errj == nil {
				return vi < vj
			}
			return part[i][idx] < part[j][idx]
		})
		return
	}
	sort.SliceStable(part, func(i, j int) bool {
		return part[i][idx] < part[j][idx]
	})
}
