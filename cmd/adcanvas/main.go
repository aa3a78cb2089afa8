// Command adcanvas renders an ad creative to PNG.
//
// The creative starts from the editor defaults, or from a TOML session
// file given with -config, and replays the scripted actions before the
// final frame is written:
//
//	adcanvas -color '#ff0000' -color '#00ff00' -text 'Lemon tart' -o out.png
//	adcanvas -config session.toml -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gogpu/adcanvas"
	"github.com/gogpu/adcanvas/config"
	"github.com/gogpu/adcanvas/editor"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// flags holds command-line overrides applied on top of the config file.
type flags struct {
	config  string
	output  string
	colors  listFlag
	text    string
	image   string
	upload  string
	mask    string
	watch   bool
	verbose bool
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "TOML session file")
	flag.StringVar(&f.output, "o", "", "output PNG file (default "+config.DefaultOutput+")")
	flag.Var(&f.colors, "color", "background color to apply (repeatable)")
	flag.StringVar(&f.text, "text", "", "replace the creative text")
	flag.StringVar(&f.image, "image", "", "product image URL, data URL or path")
	flag.StringVar(&f.upload, "upload", "", "local image file to inline as the product image")
	flag.StringVar(&f.mask, "mask", "", "image mask: rect or circle")
	flag.BoolVar(&f.watch, "watch", false, "re-render whenever the config file changes")
	flag.BoolVar(&f.verbose, "v", false, "debug logging")
	flag.Parse()

	if f.watch && f.config == "" {
		fmt.Fprintln(os.Stderr, "adcanvas: -watch needs -config")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := f.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "adcanvas:", err)
		os.Exit(1)
	}
	logger := newLogger(cfg, f.verbose)
	adcanvas.SetLogger(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("render failed", "err", err)
		if !f.watch {
			os.Exit(1)
		}
	}
	if !f.watch {
		return
	}

	logger.Info("watching for changes", "config", f.config)
	err = config.Watch(ctx, f.config, func() {
		cfg, err := f.load()
		if err != nil {
			logger.Error("reload config", "err", err)
			return
		}
		if err := run(ctx, cfg, logger); err != nil {
			logger.Error("render failed", "err", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch", "err", err)
		os.Exit(1)
	}
}

// load reads the config file, if any, and applies the flag overrides.
func (f *flags) load() (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
	}

	if f.output != "" {
		cfg.Output = f.output
	}
	if f.mask != "" {
		cfg.Mask = f.mask
	}
	for _, c := range f.colors {
		cfg.Actions = append(cfg.Actions, config.Action{Color: c})
	}
	if f.text != "" {
		cfg.Actions = append(cfg.Actions, config.Action{Text: f.text})
	}
	if f.image != "" {
		cfg.Actions = append(cfg.Actions, config.Action{Image: f.image})
	}
	if f.upload != "" {
		cfg.Actions = append(cfg.Actions, config.Action{Upload: f.upload})
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, verbose bool) *slog.Logger {
	level, _ := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run plays the session and writes the final frame.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	sh, err := editor.New(
		editor.WithState(cfg.EditorState()),
		editor.WithMask(cfg.MaskValue()),
		editor.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer sh.Close()

	sh.Render(ctx)
	for _, a := range cfg.Actions {
		if err := play(ctx, sh, a); err != nil {
			return fmt.Errorf("action %s: %w", a, err)
		}
	}

	if frame := sh.LastFrame(); frame != nil {
		wctx, cancel := context.WithTimeout(ctx, timeout)
		err := frame.Wait(wctx)
		cancel()

		var lerr *adcanvas.LoadError
		switch {
		case errors.As(err, &lerr):
			logger.Warn("product image not drawn", "err", err)
		case errors.Is(err, context.DeadlineExceeded):
			frame.Cancel()
			logger.Warn("product image load timed out", "timeout", timeout)
		case err != nil:
			return err
		}
	}

	if err := sh.Surface().SavePNG(cfg.Output); err != nil {
		return err
	}

	st := sh.State()
	logger.Info("creative written", "output", cfg.Output, "background", st.Background)
	if len(st.History) > 0 {
		fmt.Println("color history:", strings.Join(st.History, " "))
	}
	return nil
}

// play dispatches one scripted action. Text edits enter edit mode first
// and leave it again when they did.
func play(ctx context.Context, sh *editor.Shell, a config.Action) error {
	if a.IsUpload() {
		res := <-sh.ReplaceImageFile(ctx, a.Upload)
		return res.Err
	}

	act := a.EditorAction()
	if _, ok := act.(editor.EditText); ok && !sh.State().Editing {
		sh.Dispatch(ctx, editor.ToggleEditing{})
		defer sh.Dispatch(ctx, editor.ToggleEditing{})
	}
	sh.Dispatch(ctx, act)
	return nil
}
