package bot

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"

	"github.com/google/uuid"

	wlog "github.com/webitel/viberbot/log"
)

// TransportDump is an http.RoundTripper
// that dumps outbound requests and their responses at TRACE level.
type TransportDump struct {
	// Transport to perform requests.
	// Default: http.DefaultTransport
	Transport http.RoundTripper
	// WithBody dumps the body as well
	WithBody bool
	// Log to dump into.
	// Default: slog.Default()
	Log *slog.Logger
	// Redact secrets from the dump before logging.
	// Optional.
	Redact func(dump []byte) []byte
}

var _ http.RoundTripper = (*TransportDump)(nil)

func (c *TransportDump) transport() http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	return http.DefaultTransport
}

func (c *TransportDump) redact(dump []byte) []byte {
	if c.Redact != nil {
		dump = c.Redact(dump)
	}
	return trimNewlines(dump)
}

func (c *TransportDump) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// RoundTrip implements http.RoundTripper interface
func (c *TransportDump) RoundTrip(req *http.Request) (*http.Response, error) {

	var (
		ctx      = req.Context()
		traceLog = c.logger()
	)

	if !traceLog.Enabled(ctx, wlog.LevelTrace) {
		return c.transport().RoundTrip(req)
	}

	// region: DUMP Request
	reqId := uuid.NewString()
	dump, err := httputil.DumpRequestOut(req, c.WithBody && req.ContentLength != 0)
	if err != nil {
		traceLog.Log(ctx, slog.LevelError, "httputil.DumpRequestOut", "error", err, "http.rpc.id", reqId)
	} else {
		traceLog.Log(ctx, wlog.LevelTrace, fmt.Sprintf("\t>>>>> OUTBOUND (%s) >>>>>\n\n%s\n\n", reqId, c.redact(dump)))
	}
	// endregion

	// PERFORM !
	res, err := c.transport().RoundTrip(req)
	if err != nil {
		traceLog.Log(ctx, slog.LevelError, fmt.Sprintf("\t<<<<< RESPONSE (%s) <<<<<", reqId), "error", err)
		// Failure(!)
		return res, err
	}

	// region: DUMP Response
	dump, err = httputil.DumpResponse(res, c.WithBody && res.ContentLength != 0)
	if err != nil {
		traceLog.Log(ctx, slog.LevelError, "httputil.DumpResponse", "error", err, "http.rpc.id", reqId)
	} else {
		traceLog.Log(ctx, wlog.LevelTrace, fmt.Sprintf("\t<<<<< RESPONSE (%s) <<<<<\n\n%s\n\n", reqId, c.redact(dump)))
	}
	// endregion

	// Success(!)
	return res, nil
}
