package lifecycle

import (
	"context"
)

// DataHolder defines the operations a data-owning party performs on
// its own plaintext table. Nothing a DataHolder exports contains
// plaintext identifiers: the anonymized projection carries generalized
// quasi-identifiers only, and the encoded table carries Bloom filters.
type DataHolder interface {
	// Anonymize runs Mondrian k-anonymization over the plaintext table
	// and writes two artifacts: the full anonymized table (kept by the
	// holder) and the projection with sensitive attributes and
	// identifiers removed (sent to the blocker).
	Anonymize(ctx context.Context) error

	// EncodeIdentifiers Bloom-encodes the identifier columns of the
	// records that survived blocking and writes the encoded table
	// (sent to the matcher).
	EncodeIdentifiers(ctx context.Context) error
}
