// export_test.go exports private hooks for white-box testing.
package toolchain

// WithLookPath replaces the PATH probe for testing.
func (s *Selector) WithLookPath(fn func(string) (string, error)) *Selector {
	s.lookPath = fn
	return s
}
