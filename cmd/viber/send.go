package viber

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	viberbot "github.com/webitel/viberbot/bot/viber"
	"github.com/webitel/viberbot/internal/util"
)

// messageFlags of the message content
func messageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "message",
			Usage: "Message JSON object, e.g. '{\"type\":\"sticker\",\"sticker_id\":46105}'",
		},
		&cli.StringSliceFlag{
			Name:  "text",
			Usage: "Text message; absolute URL sent as url message",
		},
		&cli.StringFlag{
			Name:  "picture",
			Usage: "Picture message media URL",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "File message media URL; requires --size",
		},
		&cli.Int64Flag{
			Name:  "size",
			Usage: "File message size in bytes",
		},
		&cli.StringSliceFlag{
			Name:  "button",
			Usage: "Reply keyboard button 'text[=code]' attached to the last message",
		},
		&cli.StringFlag{
			Name:  "tracking-data",
			Usage: "Tracking data of the messages",
		},
	}
}

// sendOptions of the message content flags
type sendOptions struct {
	Messages     []string
	Text         []string
	Picture      string
	File         string
	Size         int64
	Buttons      []string
	TrackingData string
}

func sendOptionsOf(c *cli.Context) sendOptions {
	return sendOptions{
		Messages:     c.StringSlice("message"),
		Text:         c.StringSlice("text"),
		Picture:      c.String("picture"),
		File:         c.String("file"),
		Size:         c.Int64("size"),
		Buttons:      c.StringSlice("button"),
		TrackingData: c.String("tracking-data"),
	}
}

// options returns the shared message options
func (opts *sendOptions) options() viberbot.MessageOptions {
	return viberbot.MessageOptions{
		TrackingData: opts.TrackingData,
	}
}

// keyboard of the reply buttons given, one per row
func (opts *sendOptions) keyboard() *viberbot.Keyboard {
	if len(opts.Buttons) == 0 {
		return nil
	}
	rows := make([][]*viberbot.Button, 0, len(opts.Buttons))
	for _, button := range opts.Buttons {
		text, code, _ := strings.Cut(button, "=")
		rows = append(rows, []*viberbot.Button{
			viberbot.ButtonReply(text, code),
		})
	}
	return viberbot.NewKeyboard(rows...)
}

// messages in order: --message, --text, --picture, --file;
// keyboard only when no content given
func (opts *sendOptions) messages() ([]viberbot.Message, error) {

	var messages []viberbot.Message
	for _, data := range opts.Messages {
		msg, err := viberbot.ParseMessage([]byte(data))
		if err != nil {
			return nil, errors.WithMessage(err, "--message")
		}
		messages = append(messages, msg)
	}

	for _, text := range opts.Text {
		text = strings.TrimSpace(text)
		if util.IsURL(text) {
			messages = append(messages, &viberbot.URLMessage{
				Media: text, MessageOptions: opts.options(),
			})
			continue
		}
		messages = append(messages, &viberbot.TextMessage{
			Text: text, MessageOptions: opts.options(),
		})
	}

	if opts.Picture != "" {
		messages = append(messages, &viberbot.PictureMessage{
			Media: opts.Picture, MessageOptions: opts.options(),
		})
	}

	if opts.File != "" {
		file := &viberbot.FileMessage{
			Media:          opts.File,
			Size:           opts.Size,
			FileName:       util.FileName(opts.File),
			MessageOptions: opts.options(),
		}
		slog.Debug("viber/send.file",
			slog.String("name", file.FileName),
			slog.String("size", util.FormatBytes(file.Size)),
		)
		messages = append(messages, file)
	}

	keyboard := opts.keyboard()
	if keyboard != nil {
		if n := len(messages); n > 0 {
			setKeyboard(messages[n-1], keyboard)
		} else {
			messages = append(messages, &viberbot.KeyboardMessage{
				MessageOptions: viberbot.MessageOptions{Keyboard: keyboard},
			})
		}
	}

	if len(messages) == 0 {
		return nil, errors.New("message content required: --message, --text, --picture or --file")
	}

	return messages, nil
}

// setKeyboard attaches keyboard to the message given
func setKeyboard(msg viberbot.Message, keyboard *viberbot.Keyboard) {
	if m, ok := msg.(interface {
		Options() *viberbot.MessageOptions
	}); ok {
		m.Options().Keyboard = keyboard
	}
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send messages to the subscribed user",
		ArgsUsage: "<user-id>",
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:  "chat",
				Usage: "Inline conversation (chat extension) id",
			},
		}, messageFlags()...), accountFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("send: exactly one <user-id> expected")
			}
			opts := sendOptionsOf(c)
			messages, err := opts.messages()
			if err != nil {
				return err
			}
			api, err := newApi(c)
			if err != nil {
				return err
			}
			tokens, err := api.SendChatMessages(c.Context,
				c.Args().First(), c.String("chat"), messages...,
			)
			// partial result
			if len(tokens) > 0 {
				_ = output(c, tokens)
			}
			return errors.Wrap(err, "send_message")
		},
	}
}

func postCommand() *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Post messages to the bot's public chat",
		ArgsUsage: "<member-id>",
		Flags:     append(append([]cli.Flag{}, messageFlags()...), accountFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("post: exactly one <member-id> expected")
			}
			opts := sendOptionsOf(c)
			messages, err := opts.messages()
			if err != nil {
				return err
			}
			api, err := newApi(c)
			if err != nil {
				return err
			}
			tokens, err := api.PostMessagesToPublicAccount(c.Context,
				c.Args().First(), messages...,
			)
			if len(tokens) > 0 {
				_ = output(c, tokens)
			}
			return errors.Wrap(err, "post")
		},
	}
}
