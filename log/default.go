package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// --log-level ; $VIBER_LOG_LEVEL
	verbose slog.LevelVar
)

// Verbose returns the log.Level
func Verbose() slog.Level {
	return verbose.Level()
}

// SetLevel of the default logger by name,
// e.g.: "debug", "trace+2", "WARN".
func SetLevel(s string) error {
	level, err := parseLevel(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	verbose.Set(level)
	return nil
}

// Setup installs the console handler as the slog default,
// writing to output at the Verbose level.
func Setup(output io.Writer) {

	if output == nil {
		output = os.Stderr
	}

	var color bool
	if file, ok := output.(*os.File); ok {
		color = colorize(file)
	}

	// log[/slog]
	handler := console(
		output, &verbose, color,
	)
	slog.SetDefault(
		slog.New(handler),
	)
}
