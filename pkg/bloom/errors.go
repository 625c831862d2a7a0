package bloom

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/recordlink/pprl/pkg/errcode"
)

func ParamError(name string, value int) error {
	msg := "Bloom parameter <em>%s</em> has to be positive, got %d"
	vars := []any{name, value}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EncodeParamError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad bloom parameter %s: %d", fn, name, value),
	}
}

func BitstringParseError(char byte, pos int) error {
	msg := "Bit string contains byte <em>%q</em> at position %d"
	vars := []any{char, pos}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BitstringParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad bit string byte %q at %d",
			fn, char, pos),
	}
}

func BitstringSizeError(lenA, lenB int) error {
	msg := "Cannot compare bit strings of different lengths %d and %d"
	vars := []any{lenA, lenB}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BitstringSizeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bit string size mismatch %d != %d",
			fn, lenA, lenB),
	}
}
