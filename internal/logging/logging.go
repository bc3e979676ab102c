// Package logging is a thin, process-wide wrapper over stdlib log, using a
// direct log.Printf/log.Println style rather than a structured/leveled
// logging library. A logging side-effect may be initialised once per
// process; Init is the sync.Once-guarded entry point for that.
package logging

import (
	"log"
	"os"
	"sync"
)

var once sync.Once

// Init configures the process-wide logger. Safe to call multiple times or
// concurrently; only the first call takes effect.
func Init() {
	once.Do(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	})
}

// Printf logs an informational line, following a "Subsystem: message"
// convention (e.g. "Microscope: ...", "Resolver: ...").
func Printf(format string, args ...any) {
	log.Printf(format, args...)
}

// Warnf logs a warning line, prefixed so it stands out from Printf output
// without pulling in a leveled-logging dependency.
func Warnf(format string, args ...any) {
	log.Printf("WARN: "+format, args...)
}
