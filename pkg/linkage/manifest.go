package linkage

import (
	"os"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Manifest records one end-to-end pipeline run: its parameters and the
// artifacts it produced. The manifest is informational; no stage reads
// it back.
type Manifest struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	K          int        `json:"k"`
	Threshold  float64    `json:"threshold"`
	BloomSize  int        `json:"bloom_size"`
	NumHash    int        `json:"num_hash"`
	Artifacts  []Artifact `json:"artifacts"`
}

// Artifact is one produced file. The fingerprint is the deterministic
// UUID of the file content, so two runs over identical inputs and
// parameters produce identical fingerprints.
type Artifact struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Rows        int    `json:"rows,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// NewManifest starts a manifest with a fresh random run id.
func NewManifest(startedAt time.Time) *Manifest {
	return &Manifest{
		RunID:     uuid.New().String(),
		StartedAt: startedAt,
	}
}

// AddArtifact fingerprints a file and appends it to the manifest.
// Missing files are recorded without a fingerprint.
func (m *Manifest) AddArtifact(name, path string, rows int) {
	a := Artifact{Name: name, Path: path, Rows: rows}
	if data, err := os.ReadFile(path); err == nil {
		a.Fingerprint = gnuuid.New(string(data)).String()
	}
	m.Artifacts = append(m.Artifacts, a)
}

// Write stores the manifest as pretty-printed JSON.
func (m *Manifest) Write(path string) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(m)
	if err != nil {
		return ManifestWriteError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return ManifestWriteError(path, err)
	}
	return nil
}
