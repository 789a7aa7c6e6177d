// Package viber registers the viberbot commands
// for the Viber bot account management.
package viber

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	viberbot "github.com/webitel/viberbot/bot/viber"
	"github.com/webitel/viberbot/cmd"
)

// tokenFlag of the bot account
func tokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "auth-token",
		Usage:   "Bot account authentication token",
		EnvVars: []string{"VIBER_AUTH_TOKEN"},
	}
}

// accountFlags of the bot account; new set per command,
// flags keep their parsed values between runs
func accountFlags() []cli.Flag {
	return []cli.Flag{
		tokenFlag(),
		&cli.StringFlag{
			Name:    "bot-name",
			Usage:   "Messages sender name",
			EnvVars: []string{"VIBER_BOT_NAME"},
			Value:   "viberbot",
		},
		&cli.StringFlag{
			Name:    "bot-avatar",
			Usage:   "Messages sender avatar URL",
			EnvVars: []string{"VIBER_BOT_AVATAR"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "Viber bot API base URL",
			EnvVars: []string{"VIBER_API_URL"},
			Value:   viberbot.DefaultEndpoint,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "API request timeout",
			EnvVars: []string{"VIBER_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "trace",
			Usage:   "Dump API requests (--log-level=trace)",
			EnvVars: []string{"VIBER_TRACE"},
		},
	}
}

// userAgent of the API requests
func userAgent() string {
	return viberbot.DefaultUserAgent + " viberbot/" + cmd.Version()
}

// newApi client of the bot account flags given
func newApi(c *cli.Context) (*viberbot.Api, error) {
	api, err := viberbot.New(
		viberbot.BotConfiguration{
			Name:      c.String("bot-name"),
			Avatar:    c.String("bot-avatar"),
			AuthToken: c.String("auth-token"),
		},
		viberbot.WithEndpoint(c.String("api-url")),
		viberbot.WithUserAgent(userAgent()),
		viberbot.WithTimeout(c.Duration("timeout")),
		viberbot.WithTrace(c.Bool("trace")),
	)
	if err != nil {
		return nil, errors.WithMessage(err, "bot account")
	}
	return api, nil
}

// authToken flag required
func authToken(c *cli.Context) (string, error) {
	token := c.String("auth-token")
	if token == "" {
		return "", errors.New("--auth-token required")
	}
	return token, nil
}

// writer of the command output
func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// output v as indented JSON
func output(c *cli.Context, v any) error {
	enc := json.NewEncoder(writer(c))
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput of the file path given; "-" or "" stands for stdin
func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "" || path == "-" {
		var r io.Reader = os.Stdin
		if c.App.Reader != nil {
			r = c.App.Reader
		}
		return io.ReadAll(r)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read "+path)
	}
	return data, nil
}

func init() {
	cmd.Register(
		accountCommand(),
		onlineCommand(),
		userCommand(),
		webhookCommand(),
		sendCommand(),
		postCommand(),
		parseCommand(),
		signCommand(),
		serveCommand(),
	)
}
