package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options configura o logger da aplicação
type Options struct {
	Level  string
	Format string
	// Service e Env viram atributos fixos de toda linha, quando preenchidos
	Service string
	Env     string
	Writer  io.Writer
}

// SlogLogger implementa ports.Logger sobre log/slog
type SlogLogger struct {
	logger *slog.Logger
}

// New cria o logger descrito por opts. Writer nulo escreve em stdout.
func New(opts Options) ports.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, FormatText) {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With("service", opts.Service)
	}
	if opts.Env != "" {
		logger = logger.With("env", opts.Env)
	}
	return &SlogLogger{logger: logger}
}

// NewSlogLoggerWithWriter cria um logger JSON escrevendo em w
func NewSlogLoggerWithWriter(w io.Writer, level string) ports.Logger {
	return New(Options{Level: level, Writer: w})
}

func NewNopLogger() ports.Logger {
	return New(Options{Level: "error", Writer: io.Discard})
}

// ParseLevel converte o nível textual, com info como padrão
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) With(args ...any) ports.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}
