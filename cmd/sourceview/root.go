package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/sourceview"
	"github.com/iw2rmb/sourceview/editor"
	"github.com/iw2rmb/sourceview/internal/config"
	"github.com/iw2rmb/sourceview/internal/log"
	"github.com/iw2rmb/sourceview/internal/watcher"
)

const stdinName = "<stdin>"

var errBadFlag = errors.New("malformed flag value")

type rootOptions struct {
	configPath string
	theme      string
	debug      bool
	logFile    string
	selection  string
	span       string
	print      bool
	watch      bool
	width      int
	height     int
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sourceview [file]",
		Short: "Read-only, highlighted view of a Python source file",
		Long: `sourceview shows a Python file in a read-only terminal view with syntax
highlighting. With no file or "-" the document is read from stdin.

Selections use character offsets into the document (--select from:to) or a
compiler-style location (--span line:col:len, 1-based line, 0-based column).
Windows line endings are normalized before offsets are applied. With --watch
the view reloads when the file changes, keeping the selection if it still
fits.`,
		Version:      sourceview.Version(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "config file (default: .sourceview.yaml or ~/.config/sourceview/config.yaml)")
	f.StringVar(&o.theme, "theme", "", "chroma style name")
	f.BoolVar(&o.debug, "debug", false, "write debug logs")
	f.StringVar(&o.logFile, "log-file", "", "debug log path")
	f.StringVar(&o.selection, "select", "", "select character offsets from:to")
	f.StringVar(&o.span, "span", "", "select line:col:len")
	f.BoolVar(&o.print, "print", false, "render once to stdout instead of starting the UI")
	f.BoolVarP(&o.watch, "watch", "w", false, "reload the file when it changes on disk")
	f.IntVar(&o.width, "width", 80, "render width for --print")
	f.IntVar(&o.height, "height", 24, "render height for --print")
	cmd.MarkFlagsMutuallyExclusive("select", "span")
	cmd.MarkFlagsMutuallyExclusive("print", "watch")

	return cmd
}

func run(cmd *cobra.Command, args []string, o *rootOptions) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Debug {
		cleanup, err := log.Init(cfg.LogFile)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	name, doc, err := readDocument(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if o.watch && name == stdinName {
		return fmt.Errorf("%w: --watch needs a file argument", errBadFlag)
	}
	log.Info(log.CatCLI, "document loaded", "name", name, "bytes", len(doc))

	opts := []sourceview.Option{
		sourceview.WithTheme(cfg.Theme),
		sourceview.WithTabWidth(cfg.TabWidth),
		sourceview.WithLineNumbers(cfg.ShowLineNumbers),
	}
	if o.print {
		opts = append(opts, sourceview.WithSize(o.width, o.height), sourceview.WithClipboard(nil))
	}
	build := func(doc string) editor.Model { return sourceview.New(doc, opts...) }
	view := build(doc)

	if err := applySelection(&view, o); err != nil {
		return err
	}

	if o.print {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), view.Blur().View())
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if name == stdinName {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	host := newModel(view, name)
	if o.watch {
		w, changes, err := startWatcher(name)
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		host.reload = &reloader{
			changes: changes,
			load: func() (string, error) {
				_, doc, err := readDocument(args, nil)
				return doc, err
			},
			build: build,
		}
	}
	if _, err := tea.NewProgram(host, progOpts...).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// startWatcher starts a watcher on name and releases it again if it cannot
// start.
func startWatcher(name string) (*watcher.Watcher, <-chan struct{}, error) {
	w, err := watcher.New(name, watcher.DefaultDebounce)
	if err != nil {
		return nil, nil, err
	}
	changes, err := w.Start()
	if err != nil {
		if stopErr := w.Stop(); stopErr != nil {
			log.ErrorErr(log.CatWatch, "closing watcher", stopErr)
		}
		return nil, nil, err
	}
	return w, changes, nil
}

func readDocument(args []string, stdin io.Reader) (name, doc string, err error) {
	var data []byte
	if len(args) == 0 || args[0] == "-" {
		name = stdinName
		data, err = io.ReadAll(stdin)
	} else {
		name = args[0]
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}
	return name, strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

func applySelection(view *editor.Model, o *rootOptions) error {
	switch {
	case o.selection != "":
		from, to, err := parseSelect(o.selection)
		if err != nil {
			return err
		}
		if err := sourceview.SetSelection(view, from, to); err != nil {
			return fmt.Errorf("selecting %s: %w", o.selection, err)
		}
	case o.span != "":
		span, err := parseSpan(o.span)
		if err != nil {
			return err
		}
		if err := sourceview.SelectSpan(view, span); err != nil {
			return fmt.Errorf("selecting span %s: %w", o.span, err)
		}
	}
	return nil
}

// parseSelect parses "from:to".
func parseSelect(s string) (from, to int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: --select %q, want from:to", errBadFlag, s)
	}
	if from, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("%w: --select %q: %w", errBadFlag, s, err)
	}
	if to, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("%w: --select %q: %w", errBadFlag, s, err)
	}
	return from, to, nil
}

// parseSpan parses "line:col:len".
func parseSpan(s string) (sourceview.Span, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return sourceview.Span{}, fmt.Errorf("%w: --span %q, want line:col:len", errBadFlag, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return sourceview.Span{}, fmt.Errorf("%w: --span %q: %w", errBadFlag, s, err)
		}
		n[i] = v
	}
	return sourceview.Span{Line: n[0], Column: n[1], Len: n[2]}, nil
}
