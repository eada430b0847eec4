//go:build debug

package assert

// That panics if cond is false (debug builds only). Use it for caller
// contract violations that are programming errors rather than runtime
// conditions.
func That(cond bool, msg string) {
	if !cond {
		panic("hostlink: contract violation: " + msg)
	}
}
