// Package core provides the framework-agnostic authentication engine
// shared by every platform adapter.
//
// The Engine turns a raw bearer token or session cookie into a trusted
// AuthenticatedUser by consulting one or more identity providers in a
// fixed priority order, mapping every provider-specific failure into a
// closed error taxonomy. Adapters (net/http, Gin, Echo, gRPC) wrap the
// engine and translate its results into platform-native responses; the
// engine itself never touches a transport.
//
// Verification methods never return a Go error. Every outcome is a
// TokenVerificationResult: valid results carry the resolved user,
// invalid results carry a taxonomy code and a client-safe message.
// Unexpected internal failures are caught, logged, and reported as
// UNKNOWN_ERROR rather than escaping to callers.
//
// The engine also owns process observability for the auth path: a
// request/success/failure counter set with a per-code failure histogram
// (Metrics), and a bounded rolling-window latency monitor
// (PerformanceMonitor). Both are health signals, not billing or security
// inputs.
//
// Construct one Engine per process at the composition root:
//
//	engine, err := core.New(
//	    core.WithProvider(provider.FirebaseFactory(provider.FirebaseConfig{
//	        ProjectID: "my-project",
//	    })),
//	    core.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Initialization is lazy and single-flight: the first verification (or
// an explicit Initialize call) constructs the provider clients exactly
// once.
package core
