// FILE: lixenwraith/konf/cmd/konf/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lixenwraith/konf"
)

const usage = `usage: konf <command> -schema FILE [-file FILE] [-section NAME] [-v]

commands:
  check   resolve environment and file, then validate
  env     print explicitly set values as environment entries
  dump    print resolved values as TOML
`

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args, environ []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	command := args[0]
	switch command {
	case "check", "env", "dump":
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return 2
	}

	fs := flag.NewFlagSet("konf "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", "", "schema file declaring the variables (yaml, toml or json)")
	filePath := fs.String("file", "", "configuration file to load")
	section := fs.String("section", "", "top-level section of the configuration file")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *schemaPath == "" {
		fmt.Fprintln(stderr, "konf: -schema is required")
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg, err := konf.LoadRegistry(*schemaPath, konf.WithLogger(logger))
	if err != nil {
		logger.Error("failed to load schema", "path", *schemaPath, "error", err)
		return 1
	}

	builder := konf.NewBuilder(reg).WithEnviron(environ)
	if *filePath != "" {
		builder = builder.WithFile(*filePath, *section)
	}

	cfg, err := builder.Build()
	if err != nil {
		var ce *konf.ConfigError
		if errors.As(err, &ce) && ce.Variable != "" {
			logger.Debug("configuration rejected", "variable", ce.Variable)
		}
		fmt.Fprintf(stderr, "konf: %v\n", err)
		return 1
	}

	switch command {
	case "check":
		fmt.Fprintf(stdout, "ok: %d variables\n", reg.Len())
	case "env":
		exports, err := cfg.ExportEnv()
		if err != nil {
			fmt.Fprintf(stderr, "konf: %v\n", err)
			return 1
		}
		for _, v := range reg.Variables() {
			key := v.EnvKey(reg.EffectivePrefix())
			if value, ok := exports[key]; ok {
				fmt.Fprintf(stdout, "%s=%s\n", key, value)
			}
		}
	case "dump":
		if err := cfg.Dump(stdout); err != nil {
			fmt.Fprintf(stderr, "konf: %v\n", err)
			return 1
		}
	}
	return 0
}
