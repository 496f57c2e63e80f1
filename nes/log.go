package nes

import (
	"io"
	"log"
	"os"
)

var (
	logger    = log.New(os.Stderr, "", log.LstdFlags)
	debugMode bool
)

// SetLogOutput redirects all emulator logging.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetDebug toggles debug-level logging.
func SetDebug(enabled bool) {
	debugMode = enabled
}

func Logger(format string, v ...interface{}) {
	logger.Printf(format, v...)
}

func warnf(format string, v ...interface{}) {
	logger.Printf("WARN "+format, v...)
}

func debugf(format string, v ...interface{}) {
	if debugMode {
		logger.Printf("DEBUG "+format, v...)
	}
}
