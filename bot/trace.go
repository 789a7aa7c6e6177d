package bot

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"net/textproto"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	wlog "github.com/webitel/viberbot/log"
)

var (
	h1Traceid = textproto.CanonicalMIMEHeaderKey("X-Viberbot-Traceid")
)

func traceHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// has valid span attached by the instrumentation library ?
		var (
			ctx     = r.Context()
			span    = trace.SpanFromContext(ctx)
			spanCtx = span.SpanContext()
		)

		var (
			traceLvl = wlog.LevelTrace
			traceLog = slog.Default()
		)

		if traceLog.Enabled(ctx, traceLvl) {
			traceLog = traceLog.With(
				slog.String("http.rpc.id", uuid.NewString()),
			)
			if dump, err := httputil.DumpRequest(r, true); err != nil {
				traceLog.Log(ctx, slog.LevelError, "httputil.DumpRequest", "error", err)
			} else {
				traceLog.Log(ctx, traceLvl, fmt.Sprintf("\n\n%s\n\n", trimNewlines(dump)))
			}
			// response
			recorder := httptest.NewRecorder()
			response := w // original
			defer func() {

				res := recorder.Result()
				res.Proto = r.Proto
				res.ProtoMajor = r.ProtoMajor
				res.ProtoMinor = r.ProtoMinor

				if dump, err := httputil.DumpResponse(res, true); err != nil {
					traceLog.Log(ctx, slog.LevelError, "httputil.DumpResponse", "error", err)
				} else {
					traceLog.Log(ctx, traceLvl, fmt.Sprintf("\n\n%s\n\n", trimNewlines(dump)))
				}

				for h, v := range res.Header {
					response.Header()[h] = v
				}

				response.WriteHeader(res.StatusCode)
				recorder.Body.WriteTo(response)

			}()
			// substitute
			w = recorder
		}

		if spanCtx.IsValid() {
			// HTTP Response
			w.Header().Add(h1Traceid, spanCtx.TraceID().String())
		}

		// invoke
		next.ServeHTTP(w, r)
	})
}

// TraceMiddleware starts a root span per inbound request,
// reports its trace id back with the response
// and dumps the exchange at TRACE level.
func TraceMiddleware(next http.Handler) http.Handler {
	return otelhttp.NewHandler(
		traceHandler(next), "", // "server",
		otelhttp.WithPublicEndpointFn(func(_ *http.Request) bool { return true }), // always root span !
		otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
		otelhttp.WithSpanNameFormatter(func(operation string, req *http.Request) string {
			return req.Method + " " + req.URL.RequestURI() + " " + req.Proto
		}),
	)
}

func trimNewlines(dump []byte) []byte {
	for len(dump) > 0 && dump[len(dump)-1] == '\n' {
		dump = dump[:len(dump)-1]
	}
	return dump
}
