package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gsyslog "github.com/hashicorp/go-syslog"
	"github.com/hashicorp/logutils"
	"github.com/pkg/errors"
)

// Levels are the log levels we respond to.
var Levels = []logutils.LogLevel{"TRACE", "DEBUG", "INFO", "WARN", "ERR"}

const timeFmt = "2006-01-02T15:04:05.000Z0700"

// now is mocked out in the tests.
var now = func() string { return time.Now().Format(timeFmt) }

// Config is the configuration for this log setup.
type Config struct {
	// Name is the progname as it will appear in syslog output (if enabled).
	// It is also the default base name of the log file.
	Name string `json:"name"`

	// Level is the log level to use.
	Level string `json:"level"`

	// LogFilePath is the path to write the logs to the user specified file.
	LogFilePath string `json:"log_file"`

	// LogRotateDuration is the user specified time to rotate logs
	LogRotateDuration time.Duration `json:"log_rotate_duration"`

	// LogRotateBytes is the user specified byte limit to rotate logs
	LogRotateBytes int `json:"log_rotate_bytes"`

	// LogRotateMaxFiles is the maximum number of past archived log files to keep
	LogRotateMaxFiles int `json:"log_rotate_max_files"`

	// Syslog and SyslogFacility are the syslog configuration options.
	Syslog         bool   `json:"syslog"`
	SyslogFacility string `json:"syslog_facility"`

	// SyslogName is the progname as it will appear in syslog output (if enabled).
	SyslogName string `json:"syslog_name"`

	// Writer is the output where logs should go. If syslog is enabled, data will
	// be written to writer in addition to syslog.
	Writer io.Writer `json:"-"`
}

// Setup installs the log writer described by config on the standard logger.
func Setup(config *Config) error {
	logOutput, err := newWriter(config)
	if err != nil {
		return err
	}

	log.SetFlags(0)
	log.SetOutput(logOutput)

	return nil
}

func newWriter(config *Config) (io.Writer, error) {
	out := config.Writer
	if out == nil {
		out = os.Stderr
	}

	logLevel := logutils.LogLevel(strings.ToUpper(config.Level))
	logFilter, err := newLogFilter(out, logLevel)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{logFilter}

	if config.Syslog {
		log.Printf("[DEBUG] (logging) enabling syslog on %s", config.SyslogFacility)

		l, err := gsyslog.NewLogger(gsyslog.LOG_NOTICE, config.SyslogFacility, config.SyslogName)
		if err != nil {
			return nil, errors.Wrap(err, "error setting up syslog logger")
		}
		writers = append(writers, &SyslogWrapper{l, logFilter})
	}

	if config.LogFilePath != "" {
		dir, fileName := filepath.Split(config.LogFilePath)
		if fileName == "" {
			fileName = config.Name + ".log"
		}
		if config.LogRotateDuration == 0 {
			config.LogRotateDuration = DefaultLogRotateDuration
		}
		writers = append(writers, &LogFile{
			filt:     logFilter,
			fileName: fileName,
			logPath:  dir,
			duration: config.LogRotateDuration,
			MaxBytes: config.LogRotateBytes,
			MaxFiles: config.LogRotateMaxFiles,
		})
	}

	return &logWriter{writers: writers}, nil
}

// logWriter stamps each line and hands it to every configured writer. The
// writers filter on their own, so a filtered line still counts as written.
type logWriter struct {
	mu      sync.Mutex
	writers []io.Writer
}

func (w *logWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, 0, len(timeFmt)+1+len(p))
	line = append(line, now()...)
	line = append(line, ' ')
	line = append(line, p...)

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, out := range w.writers {
		if _, err := out.Write(line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// newLogFilter returns a LevelFilter that is configured with the log levels that
// we use.
func newLogFilter(out io.Writer, logLevel logutils.LogLevel) (*logutils.LevelFilter, error) {
	if !ValidLevel(string(logLevel)) {
		return nil, fmt.Errorf("invalid log level %q, valid log levels are %s",
			logLevel, levelNames())
	}

	return &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: logLevel,
		Writer:   out,
	}, nil
}

// ValidLevel reports whether level, in any case, is one of Levels.
func ValidLevel(level string) bool {
	level = strings.ToUpper(level)
	for _, l := range Levels {
		if string(l) == level {
			return true
		}
	}
	return false
}

func levelNames() string {
	names := make([]string, len(Levels))
	for i, l := range Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
