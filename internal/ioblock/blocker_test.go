package ioblock_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/recordlink/pprl/internal/ioblock"
	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/internal/iotesting"
	"github.com/recordlink/pprl/pkg/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjection(t *testing.T, workDir, holder, content string) {
	t.Helper()
	dir := filepath.Join(workDir, "dataset_"+holder)
	require.NoError(t, os.MkdirAll(dir, 0755))
	name := "k_2_anonymized_dataset_" + holder + "_no_sa_ident.csv"
	iotesting.WriteFile(t, dir, name, content)
}

func loadPairs(t *testing.T, workDir string) [][]string {
	t.Helper()
	links, err := iocsv.ReadZip(
		filepath.Join(workDir, "classifier_data", "candidate_links.zip"))
	require.NoError(t, err)
	assert.Equal(t, []string{"index_A", "index_B"}, links.Columns)
	return links.Rows
}

func TestBlockEqualTables(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()
	hdir := iotesting.WriteHierarchies(t, workDir)

	// element-wise equal quasi-identifiers on both sides
	writeProjection(t, workDir, "A",
		"index,sex,age\n1_a,M,[22-24]\n2_a,M,[22-24]\n3_a,F,26\n")
	writeProjection(t, workDir, "B",
		"index,sex,age\n1_b,M,[22-24]\n2_b,M,[22-24]\n3_b,F,26\n")

	b := ioblock.New(cfg, schema, hdir)
	require.NoError(t, b.Block(context.Background()))

	pairs := loadPairs(t, workDir)
	// every equal-tuple pair must appear
	assert.ElementsMatch(t, [][]string{
		{"1_a", "1_b"}, {"1_a", "2_b"},
		{"2_a", "1_b"}, {"2_a", "2_b"},
		{"3_a", "3_b"},
	}, pairs)

	idxA, err := iocsv.Read(
		filepath.Join(workDir, "dataset_A", "candidate_records_index_A.csv"))
	require.NoError(t, err)
	var indices []string
	for _, row := range idxA.Rows {
		indices = append(indices, row[0])
	}
	assert.Equal(t, []string{"1_a", "2_a", "3_a"}, indices)
}

func TestBlockAgeCovering(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()
	hdir := iotesting.WriteHierarchies(t, workDir)

	writeProjection(t, workDir, "A",
		"index,sex,age\n1_a,M,[21-30]\n2_a,F,[21-25]\n")
	writeProjection(t, workDir, "B",
		"index,sex,age\n1_b,M,23\n2_b,M,[21-25]\n3_b,F,[26-30]\n4_b,F,17\n")

	b := ioblock.New(cfg, schema, hdir)
	require.NoError(t, b.Block(context.Background()))

	// 1_a [21-30] covers the bare age 23 and the narrower [21-25];
	// 2_a [21-25] neither covers nor is covered by [26-30] or 17
	pairs := loadPairs(t, workDir)
	assert.ElementsMatch(t, [][]string{
		{"1_a", "1_b"}, {"1_a", "2_b"},
	}, pairs)
}

func TestBlockHierarchyCovering(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()

	// deeper sex hierarchy so generalized labels appear in the data
	hdir := filepath.Join(workDir, "hierarchy")
	require.NoError(t, os.MkdirAll(hdir, 0755))
	iotesting.WriteFile(t, hdir, "hierarchy_sex_deep.csv",
		"1,M,known,*\n2,F,known,*\n")

	writeProjection(t, workDir, "A",
		"index,sex,age\n1_a,known,30\n2_a,M,30\n")
	writeProjection(t, workDir, "B",
		"index,sex,age\n1_b,M,30\n2_b,F,40\n")

	b := ioblock.New(cfg, schema, hdir)
	require.NoError(t, b.Block(context.Background()))

	// "known" covers both M and F; verbatim M does not pair with F
	pairs := loadPairs(t, workDir)
	assert.ElementsMatch(t, [][]string{
		{"1_a", "1_b"}, {"2_a", "1_b"},
	}, pairs)

	// mutual covering holds on every emitted pair
	tree, err := hierarchy.Load(
		filepath.Join(hdir, "hierarchy_sex_deep.csv"))
	require.NoError(t, err)
	sexByIndex := map[string]string{
		"1_a": "known", "2_a": "M", "1_b": "M", "2_b": "F",
	}
	for _, pair := range pairs {
		va, vb := sexByIndex[pair[0]], sexByIndex[pair[1]]
		ab, err := tree.Covers(va, vb)
		require.NoError(t, err)
		ba, err := tree.Covers(vb, va)
		require.NoError(t, err)
		assert.True(t, ab || ba || va == vb)
	}
}

func TestBlockUnknownLabelIsFatal(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()
	hdir := iotesting.WriteHierarchies(t, workDir)

	writeProjection(t, workDir, "A",
		"index,sex,age\n1_a,X,30\n")
	writeProjection(t, workDir, "B",
		"index,sex,age\n1_b,M,30\n")

	b := ioblock.New(cfg, schema, hdir)
	assert.Error(t, b.Block(context.Background()))
}

func TestBlockEmptyResult(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()
	hdir := iotesting.WriteHierarchies(t, workDir)

	writeProjection(t, workDir, "A",
		"index,sex,age\n1_a,M,20\n")
	writeProjection(t, workDir, "B",
		"index,sex,age\n1_b,F,20\n")

	b := ioblock.New(cfg, schema, hdir)
	require.NoError(t, b.Block(context.Background()))

	assert.Empty(t, loadPairs(t, workDir))
}

func TestBlockMissingHierarchy(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()

	// empty hierarchy dir: the sex attribute has no tree
	hdir := filepath.Join(workDir, "hierarchy")
	require.NoError(t, os.MkdirAll(hdir, 0755))

	writeProjection(t, workDir, "A", "index,sex,age\n1_a,M,20\n")
	writeProjection(t, workDir, "B", "index,sex,age\n1_b,M,20\n")

	b := ioblock.New(cfg, schema, hdir)
	assert.Error(t, b.Block(context.Background()))
}
