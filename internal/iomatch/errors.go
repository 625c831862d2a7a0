package iomatch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func InputError(path, reason string) error {
	msg := "Cannot match <em>%s</em>: %s"
	vars := []any{path, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CompareInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %s", fn, path, reason),
	}
}

func SimilarityParseError(path string, row int, err error) error {
	msg := "Malformed similarity value in <em>%s</em> at row %d"
	vars := []any{path, row}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClassifyInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad similarity in %s row %d: %w",
			fn, path, row, err),
	}
}
