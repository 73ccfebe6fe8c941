// Package monitoring holds the diagnostic logging hook shared by numgo
// backends and the command line tool.
package monitoring

// Logf is the package-level diagnostic logger. It discards everything until
// SetLogger installs a real one, as the CLI does for --verbose.
var Logf = nop

func nop(string, ...any) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = nop
		return
	}
	Logf = f
}
