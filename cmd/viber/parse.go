package viber

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	viberbot "github.com/webitel/viberbot/bot/viber"
)

// parsed callback request output
type parsedRequest struct {
	Event   string           `json:"event"`
	Request viberbot.Request `json:"request"`
	Message any              `json:"message,omitempty"`
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Decode the callback request body",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			tokenFlag(),
			&cli.StringFlag{
				Name:  "signature",
				Usage: "Verify the X-Viber-Content-Signature value given; requires --auth-token",
			},
		},
		Action: func(c *cli.Context) error {
			body, err := readInput(c, c.Args().First())
			if err != nil {
				return err
			}
			if signature := c.String("signature"); signature != "" {
				token, err := authToken(c)
				if err != nil {
					return err
				}
				if !viberbot.VerifySignature(token, body, signature) {
					return errors.New("signature: invalid")
				}
			}
			req, err := viberbot.ParseRequest(body)
			if err != nil {
				return errors.Wrap(err, "parse")
			}
			res := parsedRequest{
				Event:   req.EventType(),
				Request: req,
			}
			if msg, is := req.(*viberbot.MessageRequest); is {
				res.Message = msg.Message.Payload()
			}
			return output(c, res)
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "Print the X-Viber-Content-Signature of the callback request body",
		ArgsUsage: "[file|-]",
		Flags:     []cli.Flag{tokenFlag()},
		Action: func(c *cli.Context) error {
			token, err := authToken(c)
			if err != nil {
				return err
			}
			body, err := readInput(c, c.Args().First())
			if err != nil {
				return err
			}
			_, err = writer(c).Write([]byte(
				viberbot.Sign(token, body) + "\n",
			))
			return err
		},
	}
}
