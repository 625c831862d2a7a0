package ioholder_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/recordlink/pprl/internal/iocsv"
	"github.com/recordlink/pprl/internal/ioholder"
	"github.com/recordlink/pprl/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plaintextA = `index,ID,sex,age,salary-class,given_name,surname
1_a,P1,M,22,low,ALICE,ANDERSON
2_a,P2,M,24,low,BETTY,CAMPBELL
3_a,P3,F,26,high,CLARA,QUIGLEY
4_a,P4,F,28,high,DORIS,FITZGERALD
`

func TestAnonymize(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()
	input := iotesting.WriteFile(t, workDir, "dataset_A.csv", plaintextA)

	dh := ioholder.New(cfg, schema, "A", input)
	require.NoError(t, dh.Anonymize(context.Background()))

	anon, err := iocsv.Read(
		workDir + "/dataset_A/k_2_anonymized_dataset_A.csv")
	require.NoError(t, err)
	assert.Equal(t, 4, anon.Len())
	// plaintext columns survive in the holder's own copy
	_, ok := anon.Col("surname")
	assert.True(t, ok)

	proj, err := iocsv.Read(
		workDir + "/dataset_A/k_2_anonymized_dataset_A_no_sa_ident.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "sex", "age"}, proj.Columns)
	assert.Equal(t, 4, proj.Len())

	// k=2 on {age, sex}: two classes of two, ages generalized
	sizes := make(map[string]int)
	for i := range proj.Rows {
		sizes[proj.Value(i, "sex")+"|"+proj.Value(i, "age")]++
	}
	require.Len(t, sizes, 2)
	assert.Equal(t, 2, sizes["M|[22-24]"])
	assert.Equal(t, 2, sizes["F|[26-28]"])
}

func TestAnonymizeMissingIndex(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	input := iotesting.WriteFile(t, workDir, "bad.csv",
		"sex,age\nM,22\nF,26\n")

	dh := ioholder.New(cfg, iotesting.Schema(), "A", input)
	assert.Error(t, dh.Anonymize(context.Background()))
}

func TestEncodeIdentifiers(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	schema := iotesting.Schema()
	input := iotesting.WriteFile(t, workDir, "dataset_A.csv", plaintextA)

	// candidate index from a previous blocking run keeps two records
	require.NoError(t, os.MkdirAll(workDir+"/dataset_A", 0755))
	iotesting.WriteFile(t, workDir+"/dataset_A",
		"candidate_records_index_A.csv", "index\n1_a\n3_a\n")

	dh := ioholder.New(cfg, schema, "A", input)
	require.NoError(t, dh.EncodeIdentifiers(context.Background()))

	enc, err := iocsv.ReadZip(
		workDir + "/dataset_A/encoded_identifiers_A.zip")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"index", "given_name", "surname"}, enc.Columns)
	require.Equal(t, 2, enc.Len())

	var indices []string
	for i := range enc.Rows {
		indices = append(indices, enc.Value(i, "index"))
		for _, field := range []string{"given_name", "surname"} {
			bits := enc.Value(i, field)
			assert.Len(t, bits, cfg.Pipeline.BloomSize)
			assert.Equal(t, len(bits),
				strings.Count(bits, "0")+strings.Count(bits, "1"))
			assert.Contains(t, bits, "1")
		}
	}
	assert.ElementsMatch(t, []string{"1_a", "3_a"}, indices)
}

func TestEncodeIsDeterministic(t *testing.T) {
	schema := iotesting.Schema()

	encode := func(workDir string) [][]string {
		cfg := iotesting.Config(workDir)
		input := iotesting.WriteFile(t, workDir, "dataset_A.csv", plaintextA)
		dh := ioholder.New(cfg, schema, "A", input)
		require.NoError(t, dh.EncodeIdentifiers(context.Background()))
		enc, err := iocsv.ReadZip(
			workDir + "/dataset_A/encoded_identifiers_A.zip")
		require.NoError(t, err)
		return enc.Rows
	}

	first := encode(t.TempDir())
	second := encode(t.TempDir())
	assert.Equal(t, first, second)
}

func TestEncodeWithoutCandidateIndexEncodesAll(t *testing.T) {
	workDir := t.TempDir()
	cfg := iotesting.Config(workDir)
	input := iotesting.WriteFile(t, workDir, "dataset_A.csv", plaintextA)

	dh := ioholder.New(cfg, iotesting.Schema(), "A", input)
	require.NoError(t, dh.EncodeIdentifiers(context.Background()))

	enc, err := iocsv.ReadZip(
		workDir + "/dataset_A/encoded_identifiers_A.zip")
	require.NoError(t, err)
	assert.Equal(t, 4, enc.Len())
}
