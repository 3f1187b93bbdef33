package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gookit/color"
)

type Logger interface {
	Error(format string, v ...any)
	Warning(format string, v ...any)
	Info(format string, v ...any)
	Close() error
}

type Level int

const (
	InfoLevel Level = iota
	WarningLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarningLevel:
		return "WARN"
	}
	return "INFO"
}

// Colored returns level name painted for terminal output
func (l Level) Colored() string {
	switch l {
	case ErrorLevel:
		return color.Red.Sprint(l.String())
	case WarningLevel:
		return color.Yellow.Sprint(l.String())
	}
	return color.Cyan.Sprint(l.String())
}

// Record is a single log message
type Record struct {
	Level Level
	Time  time.Time
	Text  string
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s", r.Time.Format("15:04:05"), r.Level.Colored(), r.Text)
}

// New creates a logger that writes into the file at path,
// or to stdout and stderr if path is empty.
func New(path string) (Logger, error) {
	if path != "" {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		return &StdLog{
			err:  log.New(file, "ERROR ", log.Ldate|log.Ltime),
			wrn:  log.New(file, "WARN ", log.Ldate|log.Ltime),
			inf:  log.New(file, "INFO ", log.Ldate|log.Ltime),
			file: file,
		}, nil
	}
	return NewWriterLog(os.Stdout, os.Stderr), nil
}

// NewWriterLog writes info messages to out, warnings and errors to errOut
func NewWriterLog(out, errOut io.Writer) Logger {
	return &StdLog{
		err: log.New(errOut, ErrorLevel.Colored()+" ", 0),
		wrn: log.New(errOut, WarningLevel.Colored()+" ", 0),
		inf: log.New(out, "", 0),
	}
}

type StdLog struct {
	err, wrn, inf *log.Logger
	file          *os.File
}

func (l *StdLog) Error(format string, v ...any) {
	_ = l.err.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Info(format string, v ...any) {
	_ = l.inf.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Warning(format string, v ...any) {
	_ = l.wrn.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type EmptyLog struct{}

func NewEmptyLog() Logger { return EmptyLog{} }

func (l EmptyLog) Error(string, ...any)   {}
func (l EmptyLog) Warning(string, ...any) {}
func (l EmptyLog) Info(string, ...any)    {}
func (l EmptyLog) Close() error           { return nil }
