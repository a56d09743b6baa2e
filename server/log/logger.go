// Package log declares the logging interface shared by server
// components so they all write to the same configured logger.
package log

// Logger matches the Printf method of the standard library's log.Logger.
type Logger interface {
	// Printf writes the formatted string with values to the log.
	// Arguments are handled in the manner of fmt.Printf.
	Printf(format string, v ...interface{})
}
