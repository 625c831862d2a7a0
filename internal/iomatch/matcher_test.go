package iomatch_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/internal/iomatch"
	"github.com/recordlink/pprl/internal/iotesting"
	"github.com/recordlink/pprl/pkg/bloom"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	index     string
	givenName string
	surname   string
}

func writeEncoded(
	t *testing.T, cfg *config.Config, holder string, people []person,
) {
	t.Helper()
	enc, err := bloom.NewEncoder(
		cfg.Pipeline.BloomSize,
		cfg.Pipeline.NumHash,
		[]byte(cfg.Pipeline.SecretKey),
	)
	require.NoError(t, err)

	tbl := iocsv.New([]string{"index", "given_name", "surname"})
	for _, p := range people {
		tbl.AppendRow([]string{
			p.index, enc.Encode(p.givenName), enc.Encode(p.surname),
		})
	}
	dir := filepath.Join(cfg.WorkDir, "dataset_"+holder)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, tbl.WriteZip(
		filepath.Join(dir, "encoded_identifiers_"+holder+".zip")))
}

func writeCandidates(t *testing.T, cfg *config.Config, pairs [][]string) {
	t.Helper()
	dir := filepath.Join(cfg.WorkDir, "classifier_data")
	require.NoError(t, os.MkdirAll(dir, 0755))
	tbl := iocsv.New([]string{"index_A", "index_B"})
	tbl.Rows = pairs
	require.NoError(t, tbl.WriteZip(
		filepath.Join(dir, "candidate_links.zip")))
}

func setupCompared(t *testing.T, workDir string) *config.Config {
	t.Helper()
	cfg := iotesting.Config(workDir)

	writeEncoded(t, cfg, "A", []person{
		{"1_a", "ALICE", "ANDERSON"},
		{"2_a", "BETTY", "CAMPBELL"},
	})
	writeEncoded(t, cfg, "B", []person{
		{"1_b", "ALICE", "ANDERSON"},
		{"2_b", "BETTY", "CAMPBEL"},
		{"3_b", "CLARA", "QUIGLEY"},
	})
	writeCandidates(t, cfg, [][]string{
		{"1_a", "1_b"}, {"2_a", "2_b"}, {"1_a", "3_b"},
	})

	m := iomatch.New(cfg, iotesting.Schema())
	require.NoError(t, m.Compare(context.Background()))
	return cfg
}

func loadSimilarity(t *testing.T, workDir string) map[[2]string][]float64 {
	t.Helper()
	tbl, err := iocsv.ReadZip(filepath.Join(workDir, "compared_links.zip"))
	require.NoError(t, err)
	require.Equal(t,
		[]string{"index_A", "index_B", "given_name", "surname"},
		tbl.Columns)

	res := make(map[[2]string][]float64, tbl.Len())
	for _, row := range tbl.Rows {
		var vec []float64
		for _, cell := range row[2:] {
			d, err := strconv.ParseFloat(cell, 64)
			require.NoError(t, err)
			vec = append(vec, d)
		}
		res[[2]string{row[0], row[1]}] = vec
	}
	return res
}

func TestCompare(t *testing.T) {
	workDir := t.TempDir()
	setupCompared(t, workDir)

	sims := loadSimilarity(t, workDir)
	require.Len(t, sims, 3)

	exact := sims[[2]string{"1_a", "1_b"}]
	assert.InDelta(t, 1.0, exact[0], 1e-9)
	assert.InDelta(t, 1.0, exact[1], 1e-9)

	typo := sims[[2]string{"2_a", "2_b"}]
	assert.InDelta(t, 1.0, typo[0], 1e-9)
	assert.Greater(t, typo[1], 0.7)
	assert.Less(t, typo[1], 1.0)

	unrelated := sims[[2]string{"1_a", "3_b"}]
	assert.Less(t, unrelated[0], 0.7)
	for _, d := range unrelated {
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 1.0)
	}
}

func TestCompareUnknownIndex(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)

	writeEncoded(t, cfg, "A", []person{{"1_a", "ALICE", "ANDERSON"}})
	writeEncoded(t, cfg, "B", []person{{"1_b", "ALICE", "ANDERSON"}})
	writeCandidates(t, cfg, [][]string{{"1_a", "9_b"}})

	m := iomatch.New(cfg, iotesting.Schema())
	assert.Error(t, m.Compare(context.Background()))
}

func TestCompareSizeMismatch(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)

	writeEncoded(t, cfg, "A", []person{{"1_a", "ALICE", "ANDERSON"}})
	// B encoded with a different filter length
	other := iotesting.Config(workDir)
	other.Update([]config.Option{config.OptBloomSize(200)})
	writeEncoded(t, other, "B", []person{{"1_b", "ALICE", "ANDERSON"}})
	writeCandidates(t, cfg, [][]string{{"1_a", "1_b"}})

	m := iomatch.New(cfg, iotesting.Schema())
	assert.Error(t, m.Compare(context.Background()))
}

func TestClassify(t *testing.T) {
	workDir := t.TempDir()
	cfg := setupCompared(t, workDir)

	m := iomatch.New(cfg, iotesting.Schema())
	require.NoError(t, m.Classify(context.Background()))

	matched, err := iocsv.Read(filepath.Join(workDir, "matched_links.csv"))
	require.NoError(t, err)

	var pairs [][]string
	for _, row := range matched.Rows {
		pairs = append(pairs, row[:2])
	}
	// threshold 0.7 keeps the exact pair and the one-typo pair
	assert.ElementsMatch(t, [][]string{
		{"1_a", "1_b"}, {"2_a", "2_b"},
	}, pairs)
}

func TestClassifyZeroThresholdKeepsAllPairs(t *testing.T) {
	workDir := t.TempDir()
	cfg := setupCompared(t, workDir)
	cfg.Pipeline.Threshold = 0

	m := iomatch.New(cfg, iotesting.Schema())
	require.NoError(t, m.Classify(context.Background()))

	matched, err := iocsv.Read(filepath.Join(workDir, "matched_links.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, matched.Len())
}

func TestClassifyThresholdMonotonicity(t *testing.T) {
	workDir := t.TempDir()
	cfg := setupCompared(t, workDir)

	prev := -1
	for _, threshold := range []float64{
		0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0,
	} {
		cfg.Pipeline.Threshold = threshold
		m := iomatch.New(cfg, iotesting.Schema())
		require.NoError(t, m.Classify(context.Background()))

		matched, err := iocsv.Read(
			filepath.Join(workDir, "matched_links.csv"))
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, matched.Len(), prev,
				"threshold %v", threshold)
		}
		prev = matched.Len()
	}
}
