package cli

import (
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = log.New(os.Stderr, "[logdecode] ", log.LstdFlags|log.Lmicroseconds)

// SetupRotatingLog redirects warnings to a size-rotated log file instead of
// stderr.
func SetupRotatingLog(path string) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    25,
		MaxAge:     7,
		MaxBackups: 5,
	}
	logger.SetOutput(rotator)
}

func Logf(format string, args ...any) {
	logger.Printf(format, args...)
}

func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
