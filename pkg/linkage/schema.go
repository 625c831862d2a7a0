// Package linkage declares the attribute schema of the datasets being
// linked and the shared value types of the pipeline: artifact paths
// and the run manifest.
package linkage

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Schema describes the three attribute partitions of a dataset and how
// identifier columns combine into the fields sent to the matcher.
type Schema struct {
	// IndexColumn holds the opaque per-row index. A-side and B-side
	// indices come from disjoint namespaces (e.g. "7_a" vs "7_b").
	IndexColumn string `yaml:"index_column"`

	// GroundTruthColumn is the evaluation-only entity id. It is never
	// used by the pipeline itself and is stripped before export.
	GroundTruthColumn string `yaml:"ground_truth_column"`

	// QuasiIdentifiers in declaration order; the order is part of the
	// deterministic behavior of Mondrian ranking.
	QuasiIdentifiers []string `yaml:"quasi_identifiers"`

	// AgeColumn is the numeric quasi-identifier generalized to
	// "[lo-hi]" ranges instead of a hierarchy.
	AgeColumn string `yaml:"age_column"`

	// SensitiveAttributes are carried through anonymization but never
	// leave the data holder.
	SensitiveAttributes []string `yaml:"sensitive_attributes"`

	// Identifiers are the personally identifying columns used only for
	// Bloom encoding.
	Identifiers []string `yaml:"identifiers"`

	// EncodedFields are the fields sent to the matcher.
	EncodedFields []EncodedField `yaml:"encoded_fields"`
}

// EncodedField is one Bloom-encoded output field. Multi-column fields
// concatenate their source columns in order before encoding.
type EncodedField struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// LoadSchema reads and validates a linkage.yaml file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SchemaFileError(path, err)
	}
	var s Schema
	if err = yaml.Unmarshal(data, &s); err != nil {
		return nil, SchemaFileError(path, err)
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the invariants of the schema: a non-empty index and
// quasi-identifier list, disjoint attribute partitions, an age column
// that is a quasi-identifier, and encoded fields drawing only from
// declared identifiers.
func (s *Schema) Validate() error {
	if s.IndexColumn == "" {
		return SchemaValidationError("index_column is empty")
	}
	if len(s.QuasiIdentifiers) == 0 {
		return SchemaValidationError("no quasi_identifiers declared")
	}
	if len(s.EncodedFields) == 0 {
		return SchemaValidationError("no encoded_fields declared")
	}

	part := make(map[string]string)
	add := func(cols []string, name string) error {
		for _, c := range cols {
			if prev, ok := part[c]; ok {
				return SchemaValidationError(
					"column " + c + " is declared in both " + prev +
						" and " + name)
			}
			part[c] = name
		}
		return nil
	}
	if err := add(s.QuasiIdentifiers, "quasi_identifiers"); err != nil {
		return err
	}
	if err := add(s.SensitiveAttributes, "sensitive_attributes"); err != nil {
		return err
	}
	if err := add(s.Identifiers, "identifiers"); err != nil {
		return err
	}

	if s.AgeColumn != "" && part[s.AgeColumn] != "quasi_identifiers" {
		return SchemaValidationError(
			"age_column " + s.AgeColumn + " is not a quasi-identifier")
	}

	for _, f := range s.EncodedFields {
		if f.Name == "" {
			return SchemaValidationError("encoded field without a name")
		}
		if len(f.Columns) == 0 {
			return SchemaValidationError(
				"encoded field " + f.Name + " has no source columns")
		}
		for _, c := range f.Columns {
			if part[c] != "identifiers" {
				return SchemaValidationError(
					"encoded field " + f.Name +
						" uses non-identifier column " + c)
			}
		}
	}
	return nil
}

// FieldNames returns the encoded field names in declaration order.
func (s *Schema) FieldNames() []string {
	res := make([]string, len(s.EncodedFields))
	for i, f := range s.EncodedFields {
		res[i] = f.Name
	}
	return res
}
