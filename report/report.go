// Package report carries the three message severities of an export run
package report

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Reporter receives user-visible messages
type Reporter interface {
	Info(format string, v ...any)
	Warning(format string, v ...any)
	Error(format string, v ...any)
}

// Logger writes messages through level-prefixed standard loggers
type Logger struct {
	info *log.Logger
	warn *log.Logger
	err  *log.Logger
}

// NewLogger sends info and warnings to out and errors to errOut.
// A quiet logger drops info messages.
func NewLogger(out, errOut io.Writer, color, quiet bool) *Logger {
	infoPrefix, warnPrefix, errPrefix := "[INFO ] ", "[WARN ] ", "[ERROR] "
	if color {
		infoPrefix = "[\033[34mINFO \033[0m] "
		warnPrefix = "[\033[33mWARN \033[0m] "
		errPrefix = "[\033[31mERROR\033[0m] "
	}

	infoOut := out
	if quiet {
		infoOut = io.Discard
	}

	return &Logger{
		info: log.New(infoOut, infoPrefix, 0),
		warn: log.New(out, warnPrefix, 0),
		err:  log.New(errOut, errPrefix, 0),
	}
}

func (l *Logger) Info(format string, v ...any)    { l.info.Printf(format, v...) }
func (l *Logger) Warning(format string, v ...any) { l.warn.Printf(format, v...) }
func (l *Logger) Error(format string, v ...any)   { l.err.Printf(format, v...) }

// Level of a recorded message
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Message is one recorded report
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every message in memory
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) add(level Level, format string, v []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: fmt.Sprintf(format, v...)})
}

func (r *Recorder) Info(format string, v ...any)    { r.add(LevelInfo, format, v) }
func (r *Recorder) Warning(format string, v ...any) { r.add(LevelWarning, format, v) }
func (r *Recorder) Error(format string, v ...any)   { r.add(LevelError, format, v) }

// Messages returns a copy of the recorded messages
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Texts returns the text of every message at level
func (r *Recorder) Texts(level Level) []string {
	var out []string
	for _, m := range r.Messages() {
		if m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}
