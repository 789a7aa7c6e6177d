// Package otel configures the [O]pen[Tel]emetry tracing environment
// of the viberbot command.
//
//	func main() {
//
//		ctx := context.Background()
//		err := otel.Configure(ctx,
//			otel.WithService("viberbot", cmd.Version()),
//		)
//		if err != nil {
//			os.Exit(1)
//		}
//		defer otel.Shutdown(ctx)
//
//		// your code ...
//	}
package otel
