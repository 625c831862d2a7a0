package lifecycle

import (
	"context"
)

// Blocker defines the first classifier of the pipeline. It sees only
// the two anonymized projections and reduces the quadratic record
// space to candidate pairs whose quasi-identifiers are compatible
// under the generalization hierarchies.
type Blocker interface {
	// Block computes the candidate pair set from the two projections
	// and writes three artifacts: the candidate links and, for each
	// holder, the set of indices that take part in at least one
	// candidate pair.
	Block(ctx context.Context) error
}
