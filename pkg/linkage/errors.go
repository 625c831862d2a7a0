package linkage

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func SchemaFileError(path string, err error) error {
	msg := "Cannot read linkage schema <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read schema %s: %w", fn, path, err),
	}
}

func SchemaValidationError(reason string) error {
	msg := "Invalid linkage schema: %s"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid schema: %s", fn, reason),
	}
}

func ManifestWriteError(path string, err error) error {
	msg := "Cannot write run manifest <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ManifestWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write manifest %s: %w", fn, path, err),
	}
}
