package linkage

import (
	"fmt"
	"path/filepath"
)

// Paths derives the artifact locations of one pipeline run. The layout
// follows the original deployment: one directory per data holder plus
// a classifier directory for the intermediary's artifacts.
type Paths struct {
	// WorkDir is the root of all artifacts.
	WorkDir string
	// K is the anonymity parameter, encoded into anonymized file names
	// so runs with different k do not overwrite each other.
	K int
}

// HolderDir is the per-holder artifact directory.
func (p Paths) HolderDir(holder string) string {
	return filepath.Join(p.WorkDir, "dataset_"+holder)
}

// ClassifierDir holds the blocker's artifacts.
func (p Paths) ClassifierDir() string {
	return filepath.Join(p.WorkDir, "classifier_data")
}

// AnonymizedFile is the full anonymized table of one holder.
func (p Paths) AnonymizedFile(holder string) string {
	name := fmt.Sprintf("k_%d_anonymized_dataset_%s.csv", p.K, holder)
	return filepath.Join(p.HolderDir(holder), name)
}

// ProjectionFile is the anonymized table with sensitive attributes and
// identifiers removed; the only table a holder shares with the blocker.
func (p Paths) ProjectionFile(holder string) string {
	name := fmt.Sprintf(
		"k_%d_anonymized_dataset_%s_no_sa_ident.csv", p.K, holder)
	return filepath.Join(p.HolderDir(holder), name)
}

// CandidateIndexFile lists the indices of one holder that survived
// blocking; written by the blocker, read back by the holder's encoder.
func (p Paths) CandidateIndexFile(holder string) string {
	name := "candidate_records_index_" + holder + ".csv"
	return filepath.Join(p.HolderDir(holder), name)
}

// EncodedFile is the Bloom-encoded identifier table of one holder.
func (p Paths) EncodedFile(holder string) string {
	name := "encoded_identifiers_" + holder + ".zip"
	return filepath.Join(p.HolderDir(holder), name)
}

// CandidateLinksFile is the blocker's candidate pair set.
func (p Paths) CandidateLinksFile() string {
	return filepath.Join(p.ClassifierDir(), "candidate_links.zip")
}

// ComparedLinksFile holds the Dice vectors of every candidate pair.
func (p Paths) ComparedLinksFile() string {
	return filepath.Join(p.WorkDir, "compared_links.zip")
}

// MatchedLinksFile holds the pairs that passed the threshold.
func (p Paths) MatchedLinksFile() string {
	return filepath.Join(p.WorkDir, "matched_links.csv")
}

// ManifestFile records parameters and artifact fingerprints of a run.
func (p Paths) ManifestFile() string {
	return filepath.Join(p.WorkDir, "run_manifest.json")
}
