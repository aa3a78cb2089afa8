package config

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/adcanvas"
	"github.com/gogpu/adcanvas/editor"
)

// Mask names accepted by the mask key.
const (
	MaskRect   = "rect"
	MaskCircle = "circle"
)

// Defaults applied to keys left out of a session file.
const (
	DefaultOutput      = "creative.png"
	DefaultLoadTimeout = "30s"
	DefaultLogLevel    = "info"
)

var circleBox = image.Rect(0, 0, adcanvas.DefaultWidth, adcanvas.DefaultHeight)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is a session description.
type Config struct {
	// Output is the PNG path written after the script has played.
	Output string `toml:"output"`

	// Mask selects the product image mask: "rect" or "circle".
	Mask string `toml:"mask"`

	// LoadTimeout bounds the wait for the final frame, as a Go duration.
	LoadTimeout string `toml:"load_timeout"`

	State   State    `toml:"state"`
	Actions []Action `toml:"actions"`
	Log     Log      `toml:"log"`
}

// State overrides the initial editor state. Empty fields keep the defaults.
type State struct {
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Image      string `toml:"image"`
}

// Action is one scripted step. Exactly one field must be set.
type Action struct {
	Color  string `toml:"color,omitempty"`
	Text   string `toml:"text,omitempty"`
	Image  string `toml:"image,omitempty"`
	Upload string `toml:"upload,omitempty"`
	Toggle bool   `toml:"toggle,omitempty"`
}

// Log configures the command's log output.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output:      DefaultOutput,
		Mask:        MaskRect,
		LoadTimeout: DefaultLoadTimeout,
		Log:         Log{Level: DefaultLogLevel},
	}
}

// Load reads and validates the session file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := parse(path, data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates TOML data. Keys left out keep the values of
// Default.
func Parse(data []byte) (Config, error) {
	cfg, err := parse("<data>", data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			perr.Line, perr.Column = serr.Errors[0].Position()
			perr.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return Config{}, perr
	}
	return cfg, nil
}

// Validate checks the mask name, the log level, the load timeout and that
// every action sets exactly one field.
func (c Config) Validate() error {
	var errs []error
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("%w: output is empty", ErrInvalid))
	}
	switch c.Mask {
	case MaskRect, MaskCircle, "":
	default:
		errs = append(errs, fmt.Errorf("%w: mask %q (want %q or %q)", ErrInvalid, c.Mask, MaskRect, MaskCircle))
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	for i, a := range c.Actions {
		if n := a.fields(); n != 1 {
			errs = append(errs, fmt.Errorf("%w: action %d sets %d fields, want 1", ErrInvalid, i+1, n))
		}
	}
	return errors.Join(errs...)
}

// Timeout returns LoadTimeout as a duration. Empty means DefaultLoadTimeout.
func (c Config) Timeout() (time.Duration, error) {
	s := c.LoadTimeout
	if s == "" {
		s = DefaultLoadTimeout
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: load_timeout %q", ErrInvalid, c.LoadTimeout)
	}
	return d, nil
}

// MaskValue returns the adcanvas mask named by c.Mask. The circle spans
// the whole default surface; the rect is adcanvas.DefaultMask.
func (c Config) MaskValue() adcanvas.Mask {
	if c.Mask == MaskCircle {
		return adcanvas.CircleMask(circleBox, adcanvas.DefaultCircleRatio)
	}
	return adcanvas.DefaultMask()
}

// EditorState returns the default editor state with c.State applied.
func (c Config) EditorState() editor.State {
	s := editor.DefaultState()
	if c.State.Background != "" {
		s.Background = c.State.Background
	}
	if c.State.Text != "" {
		s.Text = c.State.Text
	}
	if c.State.Image != "" {
		s.Image = c.State.Image
	}
	return s
}

// SlogLevel parses Level. Empty means info.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	s := l.Level
	if s == "" {
		s = DefaultLogLevel
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}

func (a Action) fields() int {
	n := 0
	for _, set := range []bool{a.Color != "", a.Text != "", a.Image != "", a.Upload != "", a.Toggle} {
		if set {
			n++
		}
	}
	return n
}

// IsUpload reports whether the action reads a local image file.
func (a Action) IsUpload() bool {
	return a.Upload != ""
}

// EditorAction converts the action to an editor action. Upload actions
// have no synchronous equivalent and return nil; play them through
// editor.Shell.ReplaceImageFile.
//
// A text action implies edit mode: the caller toggles editing around it.
func (a Action) EditorAction() editor.Action {
	switch {
	case a.Color != "":
		return editor.SetBackground{Color: a.Color}
	case a.Text != "":
		return editor.EditText{Text: a.Text}
	case a.Image != "":
		return editor.ReplaceImage{Source: a.Image}
	case a.Toggle:
		return editor.ToggleEditing{}
	default:
		return nil
	}
}

func (a Action) String() string {
	switch {
	case a.Color != "":
		return "color " + a.Color
	case a.Text != "":
		return fmt.Sprintf("text %q", a.Text)
	case a.Image != "":
		return "image " + a.Image
	case a.Upload != "":
		return "upload " + a.Upload
	case a.Toggle:
		return "toggle"
	default:
		return "empty"
	}
}

// ParseError is a TOML syntax or schema error.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
