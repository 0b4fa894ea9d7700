// Package shrdlog provides a small component-prefixed wrapper over the
// standard log package, matching the inline "LEVEL  message" convention
// server/api/api.go and cmd/tqserver/main.go already use rather than
// pulling in an external logging framework.
package shrdlog

import "log"

// Logger prefixes every line it writes with a component name and a
// level, padded the way server/api/api.go's logHTTPResponse pads levels.
type Logger struct {
	component string
}

// New returns a Logger that prefixes its output with component.
func New(component string) Logger {
	return Logger{component: component}
}

func (l Logger) logf(level, format string, a ...interface{}) {
	for len(level) < 5 {
		level += " "
	}
	log.Printf("%s %s: "+format, append([]interface{}{level, l.component}, a...)...)
}

// Debug logs a DEBUG-level message.
func (l Logger) Debug(format string, a ...interface{}) { l.logf("DEBUG", format, a...) }

// Info logs an INFO-level message.
func (l Logger) Info(format string, a ...interface{}) { l.logf("INFO", format, a...) }

// Warn logs a WARN-level message.
func (l Logger) Warn(format string, a ...interface{}) { l.logf("WARN", format, a...) }

// Error logs an ERROR-level message.
func (l Logger) Error(format string, a ...interface{}) { l.logf("ERROR", format, a...) }
