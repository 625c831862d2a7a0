package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// CSV table errors
	CSVReadError
	CSVWriteError
	CSVHeaderError
	ZipReadError

	// Hierarchy errors
	HierarchyFileError
	HierarchyBuildError
	UnknownLabelError
	UnknownLeafIDError

	// Mondrian errors
	MondrianInputError

	// Linkage schema errors
	SchemaFileError
	SchemaValidationError

	// Anonymization errors
	AnonymizeInputError
	ProjectionError

	// Blocking errors
	BlockInputError

	// Bloom encoding errors
	EncodeParamError
	BitstringParseError
	BitstringSizeError

	// Matching errors
	CompareInputError
	ClassifyInputError

	// Manifest errors
	ManifestWriteError
)
