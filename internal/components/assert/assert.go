package assert

import "fmt"

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

// Unreachable panics, it marks code paths that only run when a local
// invariant was broken (ex. an enum holding a code outside its table).
func Unreachable(format string, params ...any) {
	panic(fmt.Sprintf("unreachable: "+format, params...))
}
