package viber

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	errs "github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/webitel/viberbot/bot"
	viberbot "github.com/webitel/viberbot/bot/viber"
	"github.com/webitel/viberbot/log"
)

// replier sends the reply templates back to the user
type replier struct {
	api       *viberbot.Api
	templates *bot.Template
	log       *slog.Logger
}

// peer to reply to, and the template name
func replyTo(req viberbot.Request) (peerID, name string) {
	switch e := req.(type) {
	case *viberbot.MessageRequest:
		if e.Sender != nil {
			peerID = e.Sender.ID
		}
		return peerID, bot.UpdateMessage
	case *viberbot.SubscribedRequest:
		if e.User != nil {
			peerID = e.User.ID
		}
		return peerID, bot.UpdateSubscribed
	case *viberbot.ConversationStartedRequest:
		if e.User != nil {
			peerID = e.User.ID
		}
		return peerID, bot.UpdateWelcome
	}
	return "", ""
}

func (c *replier) onUpdate(ctx context.Context, req viberbot.Request) error {

	c.log.Info("viber/bot.onUpdate",
		slog.String("event", req.EventType()),
		slog.Time("time", req.Time()),
		slog.Any("request", log.JSON(req)),
	)

	peerID, name := replyTo(req)
	if peerID == "" || c.templates == nil || !c.templates.Has(name) {
		return nil
	}

	text, err := c.templates.MessageText(name, req)
	if err != nil || text == "" {
		// template fault; no redelivery
		c.log.Warn("viber/bot.onUpdate",
			slog.String("template", name),
			slog.Any("error", err),
		)
		return nil
	}

	_, err = c.api.SendMessages(ctx, peerID, &viberbot.TextMessage{Text: text})
	return err
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the webhook endpoint, logging each callback event",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "Webhook server address",
				EnvVars: []string{"VIBER_LISTEN"},
				Value:   ":8080",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Webhook endpoint path",
				Value: "/viber",
			},
			&cli.StringFlag{
				Name:    "register",
				Usage:   "Public webhook URL to set once listening",
				EnvVars: []string{"VIBER_WEBHOOK_URL"},
			},
			&cli.StringSliceFlag{
				Name:  "event",
				Usage: "Event type to subscribe to on --register; all if omitted",
			},
			&cli.StringFlag{
				Name:  "reply-message",
				Usage: "Reply template to the user message, e.g. 'You said: $(.Message.Text)'",
			},
			&cli.StringFlag{
				Name:  "reply-subscribed",
				Usage: "Reply template to the new subscriber, e.g. 'Welcome, $(.User.Name)!'",
			},
			&cli.StringFlag{
				Name:  "reply-welcome",
				Usage: "Reply template to the conversation started",
			},
			&cli.DurationFlag{
				Name:  "redelivery-window",
				Usage: "Time to remember handled events, acknowledging their redelivery",
				Value: viberbot.DefaultRedeliveryWindow,
			},
		}, accountFlags()...),
		Action: serve,
	}
}

func serve(c *cli.Context) error {

	api, err := newApi(c)
	if err != nil {
		return err
	}

	templates := bot.NewTemplate("replies")
	err = templates.Parse(map[string]string{
		bot.UpdateMessage:    c.String("reply-message"),
		bot.UpdateSubscribed: c.String("reply-subscribed"),
		bot.UpdateWelcome:    c.String("reply-welcome"),
	})
	if err == nil {
		err = templates.Test(nil)
	}
	if err != nil {
		return errs.WithMessage(err, "reply")
	}

	stdlog := slog.Default().With(
		slog.String("bot", api.Name()),
	)
	hook := &replier{
		api:       api,
		templates: templates,
		log:       stdlog,
	}

	mux := http.NewServeMux()
	mux.Handle(c.String("path"), bot.TraceMiddleware(
		api.Handler(hook.onUpdate,
			viberbot.WithHandlerLogger(stdlog),
			viberbot.WithRedeliveryWindow(
				viberbot.DefaultRedeliverySize, c.Duration("redelivery-window"),
			),
		),
	))

	ln, err := net.Listen("tcp", c.String("listen"))
	if err != nil {
		return errs.Wrap(err, "listen")
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	exit := make(chan error, 1)
	go func() {
		exit <- srv.Serve(ln)
	}()

	stdlog.Info("viber/bot.serve",
		slog.String("listen", ln.Addr().String()),
		slog.String("path", c.String("path")),
	)

	if link := c.String("register"); link != "" {
		events, err := api.SetWebhook(c.Context, link, c.StringSlice("event"), false)
		if err != nil {
			_ = srv.Close()
			return errs.Wrap(err, "set_webhook")
		}
		stdlog.Info("viber/bot.setWebhook",
			slog.String("url", link),
			slog.Any("events", events),
		)
	}

	select {
	case err = <-exit:
	case <-c.Context.Done():
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(ctx)
	}

	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}
