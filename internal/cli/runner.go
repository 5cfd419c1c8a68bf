package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/sheetdb/internal/app"
	"github.com/idilsaglam/sheetdb/internal/config"
	"github.com/idilsaglam/sheetdb/internal/logx"
	"github.com/idilsaglam/sheetdb/internal/model"
	"github.com/idilsaglam/sheetdb/internal/store/jsonstore"
	"github.com/idilsaglam/sheetdb/internal/store/sheetdb"
	"github.com/idilsaglam/sheetdb/internal/tui"
	"github.com/idilsaglam/sheetdb/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Config config.Overrides
	In     io.Reader // answers to the rm prompt; os.Stdin when nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// Without a subcommand it starts the interactive UI.
func Run(ctx context.Context, args []string, opt Options) int {
	cmd, a := "ui", []string(nil)
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}
	if opt.In == nil {
		opt.In = os.Stdin
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "config":
		return doConfig(a, opt)

	case "ui", "ls", "add", "edit", "rm":
	default:
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(os.Stderr)
		PrintHelp()
		return 2
	}

	// Validate arity before touching config or the network.
	switch cmd {
	case "add":
		if len(a) != 2 {
			ui.Fail("usage: sheetdb add <field-a> <field-b>")
			return 2
		}
	case "edit":
		if len(a) != 3 {
			ui.Fail("usage: sheetdb edit <index> <field-a> <field-b>")
			return 2
		}
	case "rm":
		if _, rest := splitYes(a); len(rest) != 1 {
			ui.Fail("usage: sheetdb rm <index> [-y]")
			return 2
		}
	}

	cfg, err := config.Load(opt.Config)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, e := range verr.Errors {
				ui.Fail(e)
			}
			return 2
		}
		ui.Fail("config: " + err.Error())
		return 1
	}
	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		ui.SetColorForcing(false, true)
	}

	if err := initLogging(cfg, cmd == "ui"); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer logx.Close()

	store, err := openStore(cfg)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}

	switch cmd {
	case "ui":
		return doUI(ctx, store)
	case "ls":
		return doList(ctx, store, a)
	case "add":
		return doAdd(ctx, store, a[0], a[1])
	case "edit":
		return doEdit(ctx, store, a)
	default:
		return doRemove(ctx, store, a, opt.In)
	}
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout(), `sheetdb - a terminal client for a SheetDB spreadsheet

Usage:
  sheetdb [flags] [subcommand] [args]

Subcommands:
  ui                        Interactive client (default)
  ls [--ids]                List entries
  add <field-a> <field-b>   Add an entry
  edit <index> <a> <b>      Replace both fields of the entry at 1-based index
  rm <index> [-y]           Delete the entry at 1-based index
  config set <id> [url]     Save the API id (and base URL) to %s
  config show               Show the resolved API id and where it came from
  config clear              Remove the saved configuration

Flags:
  --api-id, --base-url, --local, --data, --theme, --no-color, --log

Examples:
  sheetdb config set abc123xyz
  sheetdb add "Buy milk" "2 liters"
  sheetdb ls
  sheetdb rm 3
`, "~/.sheetdb/config.json")
}

func initLogging(cfg *config.Config, interactive bool) error {
	level := logx.ParseLevel(cfg.LogLevel)
	path := cfg.LogPath
	if path == "" && interactive {
		p, err := config.DefaultLogPath()
		if err != nil {
			return fmt.Errorf("log path: %w", err)
		}
		path = p
	}
	if path == "" {
		logx.Init(os.Stderr, slog.LevelWarn)
		return nil
	}
	return logx.InitFile(path, level)
}

func openStore(cfg *config.Config) (app.Store, error) {
	if cfg.Local {
		return jsonstore.New(cfg.DataPath), nil
	}
	return sheetdb.New(
		sheetdb.Config{BaseURL: cfg.BaseURL, APIID: cfg.APIID},
		sheetdb.WithLogger(logx.Pkg("sheetdb")),
	)
}

// -------------- subcommand impls ----------------

func doUI(ctx context.Context, store app.Store) int {
	toasts := tui.NewToasts(0)
	session := app.NewSession(store, toasts, logx.Pkg("app"))
	if err := tui.Run(ctx, session, toasts); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func newSession(store app.Store) *app.Session {
	return app.NewSession(store, ui.Notifier{}, logx.Pkg("app"))
}

func doList(ctx context.Context, store app.Store, args []string) int {
	showIDs := false
	for _, a := range args {
		if a != "--ids" && a != "-ids" {
			ui.Fail("usage: sheetdb ls [--ids]")
			return 2
		}
		showIDs = true
	}

	s := newSession(store)
	if err := s.Mount(ctx); err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	records := s.List().Snapshot().Records

	lines := ui.Heading()
	lines = append(lines,
		fmt.Sprintf("%s %d", ui.C(ui.Current().Accent, "Entries"), len(records)),
		"",
		ui.RecordTable(records, showIDs),
	)
	if len(records) == 0 {
		lines = append(lines, "", ui.C(ui.Current().Muted, `Tip: add with sheetdb add "a" "b"`))
	}
	ui.Panel(lines)
	return 0
}

func doAdd(ctx context.Context, store app.Store, a, b string) int {
	s := newSession(store)
	return submit(ctx, s, a, b)
}

func doEdit(ctx context.Context, store app.Store, args []string) int {
	s := newSession(store)
	rec, code := pick(ctx, s, args[0])
	if code != 0 {
		return code
	}
	s.Edit(rec)
	return submit(ctx, s, args[1], args[2])
}

func doRemove(ctx context.Context, store app.Store, args []string, in io.Reader) int {
	yes, rest := splitYes(args)
	s := newSession(store)
	rec, code := pick(ctx, s, rest[0])
	if code != 0 {
		return code
	}

	var c app.Confirmer = app.Yes
	if !yes {
		fmt.Fprintf(ui.Stdout(), "%s | %s\n", rec.A, rec.B)
		c = ui.PromptConfirmer{In: in, Out: ui.Stdout()}
	}
	issued, err := s.Delete(ctx, rec.ID, c)
	if !issued {
		ui.Hint("nothing deleted")
		return 0
	}
	if err != nil {
		ui.Hint(err.Error())
		return 1
	}
	return 0
}

func submit(ctx context.Context, s *app.Session, a, b string) int {
	s.Form().SetA(a)
	s.Form().SetB(b)
	err := s.Submit(ctx)
	switch {
	case errors.Is(err, app.ErrEmptyField):
		ui.Fail("both fields are required")
		return 2
	case err != nil:
		// The notifier already printed the failure.
		ui.Hint(err.Error())
		return 1
	}
	return 0
}

// pick loads the collection and returns the record at a 1-based index.
func pick(ctx context.Context, s *app.Session, arg string) (model.Record, int) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		ui.Fail("not a number: " + arg)
		return model.Record{}, 2
	}
	if err := s.Mount(ctx); err != nil {
		ui.Fail("load: " + err.Error())
		return model.Record{}, 1
	}
	records := s.List().Snapshot().Records
	if n < 1 || n > len(records) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(records), n))
		ui.Hint("Hint: run `sheetdb ls` to see valid indexes")
		return model.Record{}, 2
	}
	return records[n-1], 0
}

func splitYes(args []string) (yes bool, rest []string) {
	for _, a := range args {
		switch a {
		case "-y", "--yes":
			yes = true
		default:
			rest = append(rest, a)
		}
	}
	return yes, rest
}

func doConfig(args []string, opt Options) int {
	if len(args) == 0 {
		ui.Fail("usage: sheetdb config set <id> [base-url] | show | clear")
		return 2
	}
	switch args[0] {
	case "set":
		if len(args) < 2 || len(args) > 3 {
			ui.Fail("usage: sheetdb config set <id> [base-url]")
			return 2
		}
		base := ""
		if len(args) == 3 {
			base = args[2]
		}
		probe := config.Config{APIID: strings.TrimSpace(args[1]), BaseURL: firstNonEmpty(base, config.DefaultBaseURL)}
		if err := probe.Validate(); err != nil {
			ui.Fail(err.Error())
			return 2
		}
		if err := config.Save(args[1], base); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		p, _ := config.FilePath()
		ui.OK("saved to " + p)
		return 0

	case "show":
		o := opt.Config
		o.Local = false
		cfg, err := config.Resolve(o)
		if err != nil {
			ui.Fail(err.Error())
			return 1
		}
		id := "(none)"
		if cfg.APIID != "" {
			id = cfg.MaskedAPIID() + ui.C(ui.Current().Muted, " ("+string(cfg.Source)+")")
		}
		p, _ := config.FilePath()
		ui.Panel([]string{
			ui.C(ui.Current().Title, "Configuration"),
			"",
			"API id:   " + id,
			"Base URL: " + cfg.BaseURL,
			"File:     " + p,
		})
		var verr *config.ValidationError
		if errors.As(cfg.Validate(), &verr) {
			for _, e := range verr.Errors {
				ui.Hint(e)
			}
		}
		return 0

	case "clear":
		if len(args) != 1 {
			ui.Fail("usage: sheetdb config clear")
			return 2
		}
		if err := config.Clear(); err != nil {
			ui.Fail("clear: " + err.Error())
			return 1
		}
		ui.OK("configuration removed")
		return 0
	}

	ui.Fail("unknown config subcommand: " + args[0])
	return 2
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
