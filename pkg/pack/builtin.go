package pack

import (
	_ "embed"
	"sync"
)

//go:embed builtin.yaml
var builtinData []byte

var builtin = sync.OnceValues(func() (*Pack, error) {
	return Parse(builtinData)
})

// Builtin returns the pack compiled into the binary. The pack is parsed once
// and shared.
func Builtin() (*Pack, error) {
	return builtin()
}

// MustBuiltin is Builtin for callers that cannot recover from a broken
// embedded pack.
func MustBuiltin() *Pack {
	p, err := Builtin()
	if err != nil {
		panic(err)
	}
	return p
}
