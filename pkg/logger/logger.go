// Package logger configures the process-wide logrus logger. Components
// receive a *logrus.Entry scoped with their component name and add
// per-call fields (symbol, code, duration) on top.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls level, format and destination. The zero value means
// info-level text logs on stderr.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output string // stderr, stdout, or a file path
}

// New builds a configured logrus logger.
func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	log.SetLevel(parsed)

	switch strings.ToLower(opts.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	}

	out, err := output(opts.Output)
	if err != nil {
		return nil, err
	}
	log.SetOutput(out)

	return log, nil
}

// ForComponent returns an entry tagged with the component name, the
// field every package logs under.
func ForComponent(log *logrus.Logger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

func output(dest string) (io.Writer, error) {
	switch dest {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", dest, err)
		}
		return f, nil
	}
}
