// Package iotesting provides shared fixtures for package tests:
// a small linkage schema, a test configuration and helpers that
// materialize tiny datasets and hierarchies on disk.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recordlink/pprl/pkg/config"
	"github.com/recordlink/pprl/pkg/linkage"
)

// Config returns a configuration suitable for tests: a small k, two
// workers and artifacts under the given work dir.
func Config(workDir string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptK(2),
		config.OptThreshold(0.7),
		config.OptBloomSize(500),
		config.OptNumHash(10),
		config.OptJobsNumber(2),
		config.OptWorkDir(workDir),
	})
	return cfg
}

// Schema returns the attribute schema used by the test datasets:
// two quasi-identifiers (sex, age), one sensitive attribute and two
// encoded identifier fields.
func Schema() *linkage.Schema {
	return &linkage.Schema{
		IndexColumn:         "index",
		GroundTruthColumn:   "ID",
		QuasiIdentifiers:    []string{"sex", "age"},
		AgeColumn:           "age",
		SensitiveAttributes: []string{"salary-class"},
		Identifiers:         []string{"given_name", "surname"},
		EncodedFields: []linkage.EncodedField{
			{Name: "given_name", Columns: []string{"given_name"}},
			{Name: "surname", Columns: []string{"surname"}},
		},
	}
}

// WriteFile materializes one file under dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write %s: %v", path, err)
	}
	return path
}

// WriteHierarchies materializes the hierarchy files matching Schema()
// in a fresh directory: a flat tree for sex. The numeric age attribute
// needs no file.
func WriteHierarchies(t *testing.T, dir string) string {
	t.Helper()
	hdir := filepath.Join(dir, "hierarchy")
	if err := os.MkdirAll(hdir, 0755); err != nil {
		t.Fatalf("cannot create %s: %v", hdir, err)
	}
	WriteFile(t, hdir, "hierarchy_sex_test.csv", "1,M,*\n2,F,*\n")
	return hdir
}
