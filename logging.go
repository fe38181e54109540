// logging.go - trace logging for the DSP core

package soxplugins

import "log"

// traceEnabled gates the verbose entry/exit tracing used throughout the
// core. It mirrors the original's Logging_trace macros, which were a
// compile-time no-op in release builds; here it is a runtime switch, so
// while it is off each trace call costs only the call, its arguments and
// one flag check.
var traceEnabled = false

// EnableTrace turns on entry/exit tracing of the core's setup and
// parameter-change routines. It is a control-path call and must not be
// invoked from the audio thread.
func EnableTrace(enabled bool) {
	traceEnabled = enabled
}

func trace(format string, args ...any) {
	if traceEnabled {
		log.Printf(format, args...)
	}
}
