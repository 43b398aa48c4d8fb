// Package unifiedauth provides token-based authentication middleware
// with pluggable identity-provider backends and a single error
// vocabulary across platforms.
//
// The verification logic lives in the core package: a process-wide
// Engine that verifies bearer tokens and session cookies against
// configured providers (Firebase Admin SDK by default), enforces
// role-based authorization, and maps every provider failure into a
// closed taxonomy of error codes with fixed HTTP statuses. This package
// is the net/http adapter for that engine; framework/gin, framework/echo
// and framework/grpc adapt the same engine to their platforms with
// identical externally observable semantics.
//
// Typical wiring:
//
//	cfg := unifiedauth.LoadConfig()
//	engine, err := unifiedauth.NewEngineFromConfig(cfg, unifiedauth.DefaultRegistry(cfg),
//	    core.WithLogger(unifiedauth.NewZapLogger(logger.Sugar())),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mw, err := unifiedauth.New(engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mux.Handle("/api/profile", mw.RequireAuth(unifiedauth.Options{},
//	    func(w http.ResponseWriter, r *http.Request, user *core.AuthenticatedUser) {
//	        fmt.Fprintf(w, "hello %s", user.UID)
//	    }))
//	mux.Handle("/api/admin", mw.RequireAuth(unifiedauth.Options{RequiredRoles: []string{"admin"}}, adminHandler))
//	mux.Handle("/healthz", mw.HealthHandler("api"))
//
// Failure responses share one JSON shape on every platform:
//
//	{"error": "token has expired", "code": "EXPIRED_TOKEN"}
//
// with the HTTP status taken from the error code (401 for token
// problems, 403 for authorization problems, 503 for provider
// unavailability, 500 for unexpected failures).
package unifiedauth
