package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/fluesternde/berggeist-theme/internal/appearance"
	"github.com/fluesternde/berggeist-theme/internal/config"
	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/dom"
	"github.com/fluesternde/berggeist-theme/internal/picker"
	"github.com/fluesternde/berggeist-theme/internal/storage"
	"github.com/fluesternde/berggeist-theme/internal/theme"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

type env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type command struct {
	Name        string
	Description string
	Run         func(ctx context.Context, s *session, e *env, args []string) error
}

var registry = map[string]*command{}

func register(c *command) {
	registry[c.Name] = c
}

func init() {
	register(&command{Name: "get", Description: "Print the selection and the effective theme", Run: get})
	register(&command{Name: "set", Description: "set <selection>: persist a new selection", Run: set})
	register(&command{Name: "resolve", Description: "resolve <selection> [--os light|dark]: print the effective theme", Run: resolve})
	register(&command{Name: "css", Description: "css [selection] [--guard]: print the stylesheet for a theme", Run: css})
	register(&command{Name: "pick", Description: "pick [--variant default|compact|dropdown|grid] [--labels]: interactive picker", Run: pick})
	register(&command{Name: "palettes", Description: "List the custom palettes", Run: palettes})
}

// session is the per-invocation wiring built from the config.
type session struct {
	cfg     *config.Config
	dir     string
	store   storage.Store
	source  appearance.Source
	manager *theme.Manager
}

func openSession(ctx context.Context, configPath string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	// Relative storage paths resolve next to the config file in use.
	dir := filepath.Dir(configPath)
	if configPath == "" {
		if dir, err = config.Dir(); err != nil {
			return nil, fmt.Errorf("config dir: %w", err)
		}
	}
	debug.SetEnabled(cfg.Debug)

	store, err := storage.Open(cfg.Storage, dir)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	// The terminal has no webview to report the media query.
	kind := cfg.Appearance
	if kind == appearance.KindWails {
		kind = appearance.KindAuto
	}
	source, err := appearance.New(ctx, kind)
	if err != nil {
		_ = storage.Close(store)
		return nil, err
	}

	state := core.NewAppState()
	state.ConfigDir = dir
	state.DisableEvents = true

	mgr, err := theme.NewManager(state, cfg.Theme, store, source, nil)
	if err != nil {
		_ = appearance.Close(source)
		_ = storage.Close(store)
		return nil, err
	}
	return &session{cfg: cfg, dir: dir, store: store, source: source, manager: mgr}, nil
}

func (s *session) Close() {
	s.manager.Close()
	_ = appearance.Close(s.source)
	_ = storage.Close(s.store)
}

func run(ctx context.Context, args []string, e *env) int {
	fs := pflag.NewFlagSet("berggeist", pflag.ContinueOnError)
	fs.SetOutput(e.Stderr)
	fs.SetInterspersed(false)
	configPath := fs.StringP("config", "c", "", "Config file (default: <config dir>/berggeist/config.yaml)")
	verbose := fs.BoolP("verbose", "v", false, "Log to stderr")
	fs.Usage = func() { usage(e.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *verbose {
		debug.SetLogger(slog.New(slog.NewTextHandler(e.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if fs.NArg() == 0 {
		usage(e.Stderr, fs)
		return 2
	}
	cmd, ok := registry[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(e.Stderr, "berggeist: unknown command %q\n", fs.Arg(0))
		return 2
	}

	s, err := openSession(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(e.Stderr, "berggeist: %v\n", err)
		return 1
	}
	defer s.Close()

	if err := cmd.Run(ctx, s, e, fs.Args()[1:]); err != nil {
		fmt.Fprintf(e.Stderr, "%s: %v\n", cmd.Name, err)
		return 1
	}
	return 0
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: berggeist [flags] <command> [args]")
	fmt.Fprintln(w, "\nCommands:")
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, registry[name].Description)
	}
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, fs.FlagUsages())
}

func printState(w io.Writer, st types.ThemeState) {
	fmt.Fprintf(w, "selection: %s\neffective: %s\n", st.Selection, st.EffectiveTheme)
}

func get(_ context.Context, s *session, e *env, _ []string) error {
	printState(e.Stdout, s.manager.State())
	return nil
}

func set(_ context.Context, s *session, e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one selection (%s)", selectionList())
	}
	if err := s.manager.SetThemeName(args[0]); err != nil {
		return err
	}
	printState(e.Stdout, s.manager.State())
	return nil
}

func resolve(_ context.Context, s *session, e *env, args []string) error {
	fs := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	fs.SetOutput(e.Stderr)
	osPref := fs.String("os", "", "OS color scheme to resolve against (default: detected)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected one selection (%s)", selectionList())
	}

	sel, err := theme.ParseSelection(fs.Arg(0))
	if err != nil {
		return err
	}
	scheme := s.source.Preference()
	if *osPref != "" {
		if scheme, err = theme.ParseScheme(*osPref); err != nil {
			return err
		}
	}
	eff, err := theme.Resolve(sel, scheme)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.Stdout, eff)
	return nil
}

func css(_ context.Context, s *session, e *env, args []string) error {
	fs := pflag.NewFlagSet("css", pflag.ContinueOnError)
	fs.SetOutput(e.Stderr)
	guard := fs.Bool("guard", false, "Include the transition guard rule")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eff := s.manager.EffectiveTheme()
	if fs.NArg() > 0 {
		sel, err := theme.ParseSelection(fs.Arg(0))
		if err != nil {
			return err
		}
		if eff, err = theme.Resolve(sel, s.source.Preference()); err != nil {
			return err
		}
	}
	if *guard {
		fmt.Fprint(e.Stdout, dom.TransitionGuardCSS)
	}
	fmt.Fprint(e.Stdout, dom.RenderCSS(theme.Describe(eff, s.manager.Config())))
	return nil
}

func pick(ctx context.Context, s *session, e *env, args []string) error {
	fs := pflag.NewFlagSet("pick", pflag.ContinueOnError)
	fs.SetOutput(e.Stderr)
	variant := fs.String("variant", string(picker.VariantDefault), "Layout: default, compact, dropdown, grid")
	labels := fs.BoolP("labels", "l", true, "Show theme names next to the icons")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := picker.ParseVariant(*variant)
	if err != nil {
		return err
	}
	if f, ok := e.Stdin.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("needs an interactive terminal")
	}

	p := tea.NewProgram(picker.New(s.manager, picker.Options{Variant: v, ShowLabels: *labels}),
		tea.WithContext(ctx), tea.WithInput(e.Stdin), tea.WithOutput(e.Stdout))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(picker.Model); ok && m.Err() != nil {
		return m.Err()
	}
	printState(e.Stdout, s.manager.State())
	return nil
}

func palettes(_ context.Context, _ *session, e *env, _ []string) error {
	for i, np := range theme.Palettes() {
		if i > 0 {
			fmt.Fprintln(e.Stdout)
		}
		fmt.Fprintf(e.Stdout, "%s (%s)\n", np.Label, np.Theme)
		for _, role := range theme.Roles(np.Palette) {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(role[1])).Render("  ")
			fmt.Fprintf(e.Stdout, "  %s %-10s %s\n", swatch, role[0], role[1])
		}
	}
	return nil
}

func selectionList() string {
	names := make([]string, len(types.Selections))
	for i, s := range types.Selections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
