package compstate

import "log"

// Logf is the package-level diagnostic logger, defaulting to log.Printf.
// The GUI shell redirects it into its console widget; tests mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
