package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Service string
	Env     string
	Level   string
	Format  string
	Out     io.Writer
}

func New(opts Options) *logrus.Entry {
	log := logrus.New()
	log.Level = parseLevel(opts.Level)

	if strings.EqualFold(opts.Format, "json") {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	} else {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	log.Out = os.Stderr
	if opts.Out != nil {
		log.Out = opts.Out
	}

	return log.WithFields(logrus.Fields{
		"service": opts.Service,
		"env":     opts.Env,
	})
}

func parseLevel(lvl string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(lvl))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
