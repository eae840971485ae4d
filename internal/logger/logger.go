package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	infoTag  = color.New(color.FgGreen).SprintFunc()
	warnTag  = color.New(color.FgYellow).SprintFunc()
	errorTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Logger writes levelled lines, optionally prefixed with an RFC3339 timestamp.
type Logger struct {
	l  *log.Logger
	ts bool
}

func New(withTimestamp bool) *Logger {
	return NewWriter(os.Stdout, withTimestamp)
}

func NewWriter(w io.Writer, withTimestamp bool) *Logger {
	return &Logger{
		l:  log.New(w, "", 0),
		ts: withTimestamp,
	}
}

func (lg *Logger) Info(format string, args ...any) {
	lg.print(infoTag("INFO "), format, args...)
}

func (lg *Logger) Warn(format string, args ...any) {
	lg.print(warnTag("WARN "), format, args...)
}

func (lg *Logger) Error(format string, args ...any) {
	lg.print(errorTag("ERROR"), format, args...)
}

func (lg *Logger) print(tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if lg.ts {
		lg.l.Printf("[%s] %s %s", time.Now().Format(time.RFC3339), tag, msg)
		return
	}
	lg.l.Printf("%s %s", tag, msg)
}
