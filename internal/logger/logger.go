package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var (
	levelNames = map[Level]string{
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
		FATAL: "FATAL",
	}

	levelColors = map[Level]string{
		DEBUG: "\033[36m", // Cyan
		INFO:  "\033[32m", // Green
		WARN:  "\033[33m", // Yellow
		ERROR: "\033[31m", // Red
		FATAL: "\033[35m", // Magenta
	}

	slogLevels = map[Level]slog.Level{
		DEBUG: slog.LevelDebug,
		INFO:  slog.LevelInfo,
		WARN:  slog.LevelWarn,
		ERROR: slog.LevelError,
		FATAL: slog.LevelError + 4,
	}

	reset = "\033[0m"
)

// Logger writes leveled lines tagged with a service name, either as colored
// text for terminals or as JSON via slog when LOG_FORMAT=json.
type Logger struct {
	level     Level
	out       io.Writer
	service   string
	useColors bool
	showTime  bool
	json      *slog.Logger
	exit      func(int)
}

func New(service string) *Logger {
	return NewWithWriter(service, os.Stdout)
}

func NewWithWriter(service string, out io.Writer) *Logger {
	l := &Logger{
		level:     ParseLevel(os.Getenv("LOG_LEVEL")),
		out:       out,
		service:   service,
		useColors: os.Getenv("LOG_COLORS") != "false",
		showTime:  true,
		exit:      os.Exit,
	}

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		l.useJSON()
	}

	return l
}

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

func (l *Logger) useJSON() {
	handler := slog.NewJSONHandler(l.out, &slog.HandlerOptions{
		Level: slogLevels[l.level],
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogLevels[FATAL] {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	})
	l.json = slog.New(handler).With("service", l.service)
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
	if l.json != nil {
		l.useJSON()
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)

	if l.json != nil {
		l.json.Log(context.Background(), slogLevels[level], msg)
	} else {
		l.writeText(level, msg)
	}

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) writeText(level Level, msg string) {
	var buf strings.Builder

	if l.showTime {
		buf.WriteString(time.Now().Format("15:04:05"))
		buf.WriteString(" ")
	}

	if l.useColors {
		buf.WriteString(levelColors[level])
	}
	buf.WriteString(fmt.Sprintf("%-5s", levelNames[level]))
	if l.useColors {
		buf.WriteString(reset)
	}
	buf.WriteString(" ")

	if l.service != "" {
		if l.useColors {
			buf.WriteString("\033[90m") // Gray
		}
		buf.WriteString("[")
		buf.WriteString(l.service)
		buf.WriteString("]")
		if l.useColors {
			buf.WriteString(reset)
		}
		buf.WriteString(" ")
	}

	buf.WriteString(msg)

	fmt.Fprintln(l.out, buf.String())
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() {
	log.SetOutput(&stdLogWriter{logger: l})
	log.SetFlags(0)
}

type stdLogWriter struct {
	logger *Logger
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	w.logger.Info("%s", msg)
	return len(p), nil
}
