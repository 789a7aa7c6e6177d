package viber

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func webhookCommand() *cli.Command {
	return &cli.Command{
		Name:  "webhook",
		Usage: "Manage the bot callback URL",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Register the callback URL",
				ArgsUsage: "<url>",
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:  "event",
						Usage: "Event type to subscribe to; all if omitted",
					},
					&cli.BoolFlag{
						Name:  "inline",
						Usage: "Receive inline (chat extension) requests",
					},
				}, accountFlags()...),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("webhook set: exactly one <url> expected")
					}
					api, err := newApi(c)
					if err != nil {
						return err
					}
					events, err := api.SetWebhook(c.Context,
						c.Args().First(), c.StringSlice("event"), c.Bool("inline"),
					)
					if err != nil {
						return errors.Wrap(err, "set_webhook")
					}
					return output(c, events)
				},
			},
			{
				Name:  "unset",
				Usage: "Remove the callback URL",
				Flags: accountFlags(),
				Action: func(c *cli.Context) error {
					api, err := newApi(c)
					if err != nil {
						return err
					}
					return errors.Wrap(
						api.UnsetWebhook(c.Context), "set_webhook",
					)
				},
			},
		},
	}
}
