package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/sheetdb/internal/cli"
	"github.com/idilsaglam/sheetdb/internal/config"
)

func main() {
	// Root flags (apply to every subcommand)
	var o config.Overrides
	flag.StringVar(&o.APIID, "api-id", "", "SheetDB API id (overrides "+config.EnvAPIID+" and the config file)")
	flag.StringVar(&o.BaseURL, "base-url", "", "SheetDB API base URL (default "+config.DefaultBaseURL+")")
	flag.BoolVar(&o.Local, "local", false, "use a local JSON file instead of SheetDB")
	flag.StringVar(&o.DataPath, "data", "", "local JSON file for --local (default ./sheetdb.json)")
	flag.StringVar(&o.Theme, "theme", "", "color theme: classic, neon or mono")
	flag.BoolVar(&o.NoColor, "no-color", false, "disable colored output")
	flag.StringVar(&o.LogPath, "log", "", "write JSON logs to this file")
	flag.Usage = func() {
		cli.PrintHelp()
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, flag.Args(), cli.Options{Config: o})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
