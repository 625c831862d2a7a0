package lifecycle

import (
	"context"
)

// Matcher defines the second classifier of the pipeline. It sees only
// Bloom-encoded identifiers, never plaintext.
//
// The two phases are separated on purpose: comparing computes a Dice
// vector for every candidate pair and is expensive, classifying is a
// cheap filter over
// the comparison artifact. A single Compare run can be re-classified
// at many thresholds.
type Matcher interface {
	// Compare computes the Dice-coefficient vector of every candidate
	// pair across all encoded fields and persists the full similarity
	// table.
	Compare(ctx context.Context) error

	// Classify reads the comparison artifact and keeps the pairs whose
	// lowest field similarity reaches the threshold.
	Classify(ctx context.Context) error
}
