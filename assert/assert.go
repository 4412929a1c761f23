package assert

import "github.com/oomph-ac/motion/oerror"

// IsTrue panics when ok is false. It guards programmer invariants, never runtime input.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
