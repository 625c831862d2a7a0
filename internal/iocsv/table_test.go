package iocsv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *iocsv.Table {
	t := iocsv.New([]string{"index", "sex", "age"})
	t.AppendRow([]string{"1_a", "M", "22"})
	t.AppendRow([]string{"2_a", "F", "26"})
	return t
}

func TestRoundTripPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	src := sampleTable()
	require.NoError(t, src.Write(path))

	got, err := iocsv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, src.Columns, got.Columns)
	assert.Equal(t, src.Rows, got.Rows)
}

func TestRoundTripZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.zip")
	src := sampleTable()
	require.NoError(t, src.WriteZip(path))

	got, err := iocsv.ReadZip(path)
	require.NoError(t, err)
	assert.Equal(t, src.Columns, got.Columns)
	assert.Equal(t, src.Rows, got.Rows)
}

func TestLoadDispatchesOnSuffix(t *testing.T) {
	dir := t.TempDir()
	src := sampleTable()

	plain := filepath.Join(dir, "t.csv")
	zipped := filepath.Join(dir, "t.zip")
	require.NoError(t, src.Save(plain))
	require.NoError(t, src.Save(zipped))

	for _, path := range []string{plain, zipped} {
		got, err := iocsv.Load(path)
		require.NoError(t, err)
		assert.Equal(t, src.Rows, got.Rows, path)
	}
}

func TestSelect(t *testing.T) {
	src := sampleTable()

	got, err := src.Select([]string{"age", "index"})
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "index"}, got.Columns)
	assert.Equal(t, [][]string{{"22", "1_a"}, {"26", "2_a"}}, got.Rows)

	_, err = src.Select([]string{"nope"})
	assert.Error(t, err)
}

func TestDrop(t *testing.T) {
	src := sampleTable()
	got := src.Drop("sex", "not-there")
	assert.Equal(t, []string{"index", "age"}, got.Columns)
	assert.Equal(t, [][]string{{"1_a", "22"}, {"2_a", "26"}}, got.Rows)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := iocsv.Read(filepath.Join(dir, "absent.csv"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = iocsv.Read(empty)
	assert.Error(t, err)

	ragged := filepath.Join(dir, "ragged.csv")
	require.NoError(t, os.WriteFile(ragged,
		[]byte("a,b\n1,2\n3\n"), 0644))
	_, err = iocsv.Read(ragged)
	assert.Error(t, err)
}

func TestAtomicWriteLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, sampleTable().Write(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}
