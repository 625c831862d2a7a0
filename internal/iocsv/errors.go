package iocsv

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func ReadError(path string, err error) error {
	msg := "Cannot read CSV file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CSVReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read csv %s: %w", fn, path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write CSV file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CSVWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write csv %s: %w", fn, path, err),
	}
}

func HeaderError(path string) error {
	msg := "Malformed CSV file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CSVHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: malformed csv %s", fn, path),
	}
}

func MissingColumnError(column string) error {
	msg := "Missing required column <em>%s</em>"
	vars := []any{column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CSVHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: missing column %s", fn, column),
	}
}

func ZipReadError(path string, err error) error {
	msg := "Cannot read zip archive <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ZipReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read zip %s: %w", fn, path, err),
	}
}
