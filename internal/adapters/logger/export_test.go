// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry re-exports errorEntry for format tests.
type ErrorEntry = errorEntry

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
