package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	sfmt "github.com/samber/slog-formatter"
)

// Custom levels
const (
	LevelTrace = (slog.LevelDebug - 4)
	LevelFatal = (slog.LevelError + 4)
)

func parseLevel(s string) (v slog.Level, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("log: level string %q: %w", s, err)
		}
	}()

	name := s
	offset := 0
	if i := strings.IndexAny(s, "+-"); i >= 0 {
		name = s[:i]
		offset, err = strconv.Atoi(s[i:])
		if err != nil {
			return // info, err
		}
	}
	switch strings.ToUpper(name) {
	case "TRACE":
		v = LevelTrace
	case "DEBUG":
		v = slog.LevelDebug
	case "INFO":
		v = slog.LevelInfo
	case "WARN":
		v = slog.LevelWarn
	case "ERROR":
		v = slog.LevelError
	case "FATAL":
		v = LevelFatal
	default:
		err = errors.New("unknown name")
		return // info, err
	}
	v += slog.Level(offset)
	return // v, nil
}

// Secret attribute keys, masked on output
var secrets = []string{
	"auth_token",
	"token",
}

func mask(v slog.Value) slog.Value {
	if v.Kind() == slog.KindString && v.String() == "" {
		return v
	}
	return slog.StringValue("********")
}

// colorize output if $VIBER_LOG_COLOR and a terminal
func colorize(output *os.File) bool {
	on, _ := strconv.ParseBool(
		os.Getenv("VIBER_LOG_COLOR"),
	)
	if on {
		on = isatty.IsTerminal(output.Fd()) ||
			isatty.IsCygwinTerminal(output.Fd())
	}
	return on
}

func console(output io.Writer, verbose slog.Leveler, color bool) slog.Handler {
	formatters := make([]sfmt.Formatter, 0, len(secrets))
	for _, key := range secrets {
		formatters = append(formatters, sfmt.FormatByKey(key, mask))
	}
	return sfmt.NewFormatterHandler(
		formatters...,
	)(
		tint.NewHandler(output, &tint.Options{
			AddSource:  false,
			Level:      verbose,
			TimeFormat: "Jan 02 15:04:05.000", // time.StampMilli,
			NoColor:    !color,
		}),
	)
}
