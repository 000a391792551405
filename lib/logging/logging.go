package logging

import (
	"context"
	"log"
)

func init() {
	if fl := log.Flags(); fl&log.Ltime != 0 {
		log.SetFlags(fl | log.Lmicroseconds)
	}
}

// Logf logs a formatted message under the current context.
func Logf(
	ctx context.Context,
	format string,
	v ...interface{},
) {
	log.Printf(format, v...)
}
