package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/wichananm65/wp-envconfig/internal/envfile"
	"github.com/wichananm65/wp-envconfig/internal/render"
	"github.com/wichananm65/wp-envconfig/internal/wpconfig"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		envFile  string
		root     string
		format   string
		redis    bool
		strict   bool
		redact   bool
		describe bool
		verbose  bool
	)

	flagSet := pflag.NewFlagSet("wpconfig", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "overlay file merged under the process environment")
	flagSet.StringVar(&root, "root", ".", "install root used for WP_CONTENT_DIR and ABSPATH")
	flagSet.StringVarP(&format, "format", "f", render.FormatPHP, "output format: php, json or dotenv")
	flagSet.BoolVar(&redis, "redis-extension", false, "resolve object cache settings (backend is available)")
	flagSet.BoolVar(&strict, "strict", false, "reject unrecognized boolean and integer values")
	flagSet.BoolVar(&redact, "redact", false, "mask database password, keys and salts")
	flagSet.BoolVar(&describe, "describe", false, "list the settings policy and exit")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log overlay details to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if describe {
		return describePolicy(stdout)
	}

	overlay, err := envfile.Load(envFile)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":     overlay.Path,
		"found":    overlay.Found,
		"applied":  overlay.Applied,
		"shadowed": overlay.Shadowed,
	}).Debug("env overlay loaded")

	set, err := wpconfig.NewLoader(wpconfig.OSLookup, wpconfig.Options{
		Root:           root,
		RedisAvailable: redis,
		Strict:         strict,
	}).Build()
	if err != nil {
		return err
	}

	out, err := render.Format(set, format, redact)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(stdout, out)
	return err
}

func describePolicy(w io.Writer) error {
	for _, s := range wpconfig.Policy() {
		source := s.Source()
		if source == "" {
			source = "(derived)"
		}
		rule := fmt.Sprintf("default %q", s.Default.String())
		switch {
		case s.Required:
			rule = "required"
		case s.Source() == "":
			rule = "derived"
		}
		if s.Conditional() {
			rule += ", conditional"
		}
		if _, err := fmt.Fprintf(w, "%-28s %-26s %-7s %s\n", s.Key, source, s.Kind, rule); err != nil {
			return err
		}
	}
	return nil
}
