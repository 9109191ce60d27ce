package log

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	log    = logrus.New()
	rawLog = logrus.New()

	// LogLevel is the level requested through the environment. It takes
	// precedence over the level set in the configuration file.
	LogLevel = os.Getenv("TYK_LOGLEVEL")

	// LogFormat is the format requested through the environment.
	LogFormat = os.Getenv("TYK_LOGFORMAT")
)

func init() {
	log.Formatter = NewFormatter(LogFormat)
	log.Level = levelFromString(LogLevel, logrus.InfoLevel)

	rawLog.Formatter = new(RawFormatter)
}

// Get returns the default configured logger.
func Get() *logrus.Logger {
	return log
}

// GetRaw is used internally. Should likely be removed first, do not rely on it.
func GetRaw() *logrus.Logger {
	return rawLog
}

// SetLevel sets the log level from a string value. Unknown values are
// reported as false and leave the level untouched. An explicit
// TYK_LOGLEVEL always wins over the passed value.
func SetLevel(level string) bool {
	if LogLevel != "" {
		return true
	}

	lvl, ok := parseLevel(level)
	if !ok {
		return false
	}

	log.Level = lvl
	return true
}

// NewFormatter returns a formatter for the given format name. The only
// recognized name is "json", anything else yields the text formatter.
func NewFormatter(format string) logrus.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{
			TimestampFormat: time.RFC3339,
		}
	default:
		return &logrus.TextFormatter{
			TimestampFormat: "Jan 02 15:04:05",
			FullTimestamp:   true,
			DisableColors:   true,
		}
	}
}

// ValidLevel reports whether level names a supported log level.
func ValidLevel(level string) bool {
	_, ok := parseLevel(level)
	return ok
}

func levelFromString(level string, def logrus.Level) logrus.Level {
	if lvl, ok := parseLevel(level); ok {
		return lvl
	}
	return def
}

func parseLevel(level string) (logrus.Level, bool) {
	switch strings.ToLower(level) {
	case "error":
		return logrus.ErrorLevel, true
	case "warn":
		return logrus.WarnLevel, true
	case "debug":
		return logrus.DebugLevel, true
	case "", "info":
		return logrus.InfoLevel, true
	default:
		return logrus.InfoLevel, false
	}
}

// RawFormatter prints only the message of an entry.
type RawFormatter struct{}

func (f *RawFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message), nil
}
