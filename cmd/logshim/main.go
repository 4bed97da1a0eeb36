// Command logshim demonstrates the sink configuration and re-renders JSON
// log lines as text.
//
//	logshim demo [--json=false] [--time-format iso8601] [--color never] [--config logging.yaml]
//	app | logshim pretty [--color always]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/philipp01105/logshim/config"
	"github.com/philipp01105/logshim/logger"
	"github.com/philipp01105/logshim/sink"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "demo":
		err = runDemo(args)
	case "pretty":
		err = runPretty(args, os.Stdin)
	case "-h", "--help", "help":
		usage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "logshim: unknown command %q\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Named("logshim").Log(logger.FatalLevel, "command failed",
			logger.String("command", os.Args[1]), logger.Err(err))
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: logshim <demo|pretty> [flags]")
}

// loadConfig parses args into a flag set carrying the logging flags and
// configures the default sink from the result. overrides win over any
// configured value.
func loadConfig(name string, args []string, overrides ...sink.Option) error {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	config.BindFlags(fs)
	path := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFlags(*path, fs)
	if err != nil {
		return err
	}
	return sink.Configure(append(cfg.SinkOptions(), overrides...)...)
}
