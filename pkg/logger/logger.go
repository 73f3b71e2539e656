package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Minimal leveled logger shared by the modgate services.
// Provides Debug/Info/Warn/Error/Fatal variants; level set via Init.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu  sync.RWMutex
	out *log.Logger = log.New(os.Stdout, "", 0)
	lvl Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error,
// fatal). Call early during startup. Default level is Info.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = LevelDebug
	case "warn", "warning":
		lvl = LevelWarn
	case "error":
		lvl = LevelError
	case "fatal":
		lvl = LevelFatal
	default:
		lvl = LevelInfo
	}
}

func header(level string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(level))
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= lvl
}

func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		out.Printf(header("debug")+format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		out.Printf(header("info")+format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		out.Printf(header("warn")+format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		out.Printf(header("error")+format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	out.Printf(header("fatal")+format, v...)
	os.Exit(1)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch lvl {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
