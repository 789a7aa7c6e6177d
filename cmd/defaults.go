package cmd

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/webitel/viberbot/log"
	"github.com/webitel/viberbot/otel"
)

var (
	Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: trace, debug, info, warn, error; +/-N offset allowed",
			EnvVars: []string{"VIBER_LOG_LEVEL"},
			Value:   "info",
		},
		&cli.StringFlag{
			Name:    "otel-exporter",
			Usage:   "OpenTelemetry traces exporter: none, console",
			EnvVars: []string{"OTEL_TRACES_EXPORTER"},
			Value:   "none",
		},
	}
)

func before(c *cli.Context) error {
	err := log.SetLevel(c.String("log-level"))
	if err != nil {
		return errors.WithMessage(err, "--log-level")
	}
	output := c.App.ErrWriter
	if output == nil {
		output = os.Stderr
	}
	log.Setup(output)
	err = otel.Configure(c.Context,
		otel.WithService(name, Version()),
		otel.WithExporter(c.String("otel-exporter")),
		otel.WithOutput(output),
	)
	if err != nil {
		return errors.Wrap(err, "otel.Configure")
	}
	slog.Debug("viberbot",
		slog.String("version", Version()),
		slog.String("verbose", log.Verbose().String()),
	)
	return nil
}

func after(c *cli.Context) error {
	return otel.Shutdown(c.Context)
}
