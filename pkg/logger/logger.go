// Package logger configures the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = newDefault()

type Options struct {
	Level     string
	Dir       string
	FileName  string
	ToConsole bool
}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	return l
}

// Setup switches the global logger to JSON output on a rotated file,
// optionally mirrored to stderr.
func Setup(opts Options) error {
	l := logrus.New()
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info: %v\n", opts.Level, err)
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	var writers []io.Writer
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return fmt.Errorf("create log dir %s: %w", opts.Dir, err)
		}
		name := opts.FileName
		if name == "" {
			name = "plataform.log"
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, name),
			MaxSize:    5, // MB
			MaxBackups: 7,
			MaxAge:     28,
			Compress:   true,
		})
	}
	if opts.ToConsole || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	l.SetOutput(io.MultiWriter(writers...))

	log = l
	log.Infof("logger ready level=%s dir=%s", level, opts.Dir)
	return nil
}

// L exposes the underlying logger for bridges (gorm, echo).
func L() *logrus.Logger { return log }

// SetOutput redirects the global logger; tests use it to silence or capture.
func SetOutput(w io.Writer) { log.SetOutput(w) }

func WithFields(fields logrus.Fields) *logrus.Entry { return log.WithFields(fields) }

func WithError(err error) *logrus.Entry { return log.WithError(err) }

func Debugf(format string, args ...any) { log.Debugf(format, args...) }
func Infof(format string, args ...any)  { log.Infof(format, args...) }
func Warnf(format string, args ...any)  { log.Warnf(format, args...) }
func Errorf(format string, args ...any) { log.Errorf(format, args...) }
func Fatalf(format string, args ...any) { log.Fatalf(format, args...) }
