package ioblock

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn, err),
	}
}

func InputError(path, reason string) error {
	msg := "Cannot block <em>%s</em>: %s"
	vars := []any{path, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BlockInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %s", fn, path, reason),
	}
}
