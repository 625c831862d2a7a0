package mondrian

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func InputError(reason string) error {
	msg := "Cannot anonymize: %s"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MondrianInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s", fn, reason),
	}
}
