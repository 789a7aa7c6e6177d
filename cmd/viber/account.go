package viber

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func accountCommand() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Show the bot account details",
		Flags: accountFlags(),
		Action: func(c *cli.Context) error {
			api, err := newApi(c)
			if err != nil {
				return err
			}
			account, err := api.GetAccountInfo(c.Context)
			if err != nil {
				return errors.Wrap(err, "get_account_info")
			}
			// reported as is; status checked after
			if err = output(c, account); err != nil {
				return err
			}
			return account.Err()
		},
	}
}

func onlineCommand() *cli.Command {
	return &cli.Command{
		Name:      "online",
		Usage:     "Show the users online status",
		ArgsUsage: "<user-id>...",
		Flags:     accountFlags(),
		Action: func(c *cli.Context) error {
			api, err := newApi(c)
			if err != nil {
				return err
			}
			users, err := api.GetOnline(c.Context, c.Args().Slice()...)
			if err != nil {
				return errors.Wrap(err, "get_online")
			}
			return output(c, users)
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "Show the user details",
		ArgsUsage: "<user-id>",
		Flags:     accountFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("user: exactly one <user-id> expected")
			}
			api, err := newApi(c)
			if err != nil {
				return err
			}
			user, err := api.GetUserDetails(c.Context, c.Args().First())
			if err != nil {
				return errors.Wrap(err, "get_user_details")
			}
			return output(c, user)
		},
	}
}
