package hierarchy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func FileError(path string, err error) error {
	msg := "Cannot read hierarchy file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HierarchyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read hierarchy %s: %w", fn, path, err),
	}
}

func FileNameError(path string) error {
	msg := "Hierarchy file name <em>%s</em> does not encode an attribute"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HierarchyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad hierarchy file name %s", fn, path),
	}
}

func BuildError(path, reason string) error {
	msg := "Malformed hierarchy file <em>%s</em>: %s"
	vars := []any{path, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HierarchyBuildError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: malformed hierarchy %s: %s", fn, path, reason),
	}
}

func UnknownLabelError(attribute, label string) error {
	msg := "Label <em>%s</em> does not exist in the <em>%s</em> hierarchy"
	vars := []any{label, attribute}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownLabelError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown label %q in hierarchy %s",
			fn, label, attribute),
	}
}

func UnknownLeafIDError(attribute string, leafID int) error {
	msg := "Leaf id <em>%d</em> does not exist in the <em>%s</em> hierarchy"
	vars := []any{leafID, attribute}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownLeafIDError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown leaf id %d in hierarchy %s",
			fn, leafID, attribute),
	}
}
