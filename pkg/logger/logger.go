package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config represents the logger configs.
type Config struct {
	Level      string   `yaml:"level"`
	Targets    []string `yaml:"targets"`
	Filename   string   `yaml:"filename"`
	MaxSizeMB  int      `yaml:"max_size_in_mb"`
	MaxBackups int      `yaml:"max_backups"`
	Compress   bool     `yaml:"compress"`
}

var global = zerolog.New(os.Stderr).With().Timestamp().Logger()

// InitGlobalLogger configures the process-wide logger.
func InitGlobalLogger(cfg *Config) {
	var writers []io.Writer

	for _, target := range cfg.Targets {
		switch target {
		case "file":
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.Filename,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				Compress:   cfg.Compress,
			})
		case "console":
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	global = zerolog.New(io.MultiWriter(writers...)).Level(level).With().Timestamp().Logger()
}

func Debug(msg string, keyValues ...any) {
	write(global.Debug(), msg, keyValues)
}

func Info(msg string, keyValues ...any) {
	write(global.Info(), msg, keyValues)
}

func Warn(msg string, keyValues ...any) {
	write(global.Warn(), msg, keyValues)
}

func Error(msg string, keyValues ...any) {
	write(global.Error(), msg, keyValues)
}

func write(e *zerolog.Event, msg string, keyValues []any) {
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keyValues[i+1])
	}
	e.Msg(msg)
}
