// File: lixenwraith/konf/doc.go

// Package konf binds typed configuration variables to values resolved from
// environment variables, configuration files, flags and explicit assignments.
//
// Variables are declared once in a Registry. Each has a kind (boolean,
// integer, float, string, list, symbol or duration), an optional default, an
// optional set of allowed values and optional validators. A Config resolves
// values against that schema: every value is cast to its canonical Go type,
// checked, and stored only when all checks pass.
//
// Quick Start:
//
//	reg := konf.NewRegistry(konf.WithEnvPrefix("myapp"))
//	reg.MustRegister("port", konf.KindInteger, konf.Default(8080), konf.AllowedRange(1, 65535))
//	reg.MustRegister("timeout", konf.KindDuration, konf.Default("30s"))
//	reg.MustRegister("api_key", konf.KindString, konf.Required())
//
//	cfg, err := konf.New(reg) // reads MYAPP_PORT, MYAPP_TIMEOUT, MYAPP_API_KEY
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	port, _ := cfg.Int64("port")
//	timeout, _ := cfg.Duration("timeout")
//
// With a prefix set, any MYAPP_* environment variable that matches no
// declared variable is an error unless WithIgnoreUnknownEnv(true) is given.
//
// Durations accept bare seconds ("90", "1.5") or unit sums ("1h 30m",
// "2d", "500ms"), with units ms, s, m, h, d and w.
//
// Builder precedence (highest to lowest):
//  1. Command-line flags (-port=9090)
//  2. Environment variables (MYAPP_PORT=9090)
//  3. Configuration file (config.toml, .yaml or .json)
//  4. Default values
//
// Thread Safety:
// A Registry is immutable once the first Config is built from it. Each
// Config call is atomic; sequences of calls need external coordination.
package konf
