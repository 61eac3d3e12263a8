// Package theme holds the board's visual parameters. Defaults are
// embedded; a deployment may override individual values with a
// theme.yaml in the configured directory.
package theme

import (
	"embed"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed theme.yaml
var defaultFiles embed.FS

// Theme is the full set of render parameters. Colors are hex strings,
// #RRGGBB or #RRGGBBAA.
type Theme struct {
	SquarePx int `yaml:"square_px"`
	MarginPx int `yaml:"margin_px"`

	LightSquare string `yaml:"light_square"`
	DarkSquare  string `yaml:"dark_square"`
	Highlight   string `yaml:"highlight"`
	Background  string `yaml:"background"`

	WhitePieceFill string `yaml:"white_piece_fill"`
	WhitePieceText string `yaml:"white_piece_text"`
	BlackPieceFill string `yaml:"black_piece_fill"`
	BlackPieceText string `yaml:"black_piece_text"`

	LabelText   string  `yaml:"label_text"`
	DrawLabels  bool    `yaml:"draw_labels"`
	MarkerScale float64 `yaml:"marker_scale"`
}

// Load reads the embedded defaults and then applies theme.yaml or
// theme.yml from overrideDir if one exists there.
func Load(overrideDir string) (*Theme, error) {
	raw, err := fs.ReadFile(defaultFiles, "theme.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded theme: %w", err)
	}
	var t Theme
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse embedded theme: %w", err)
	}

	if dir := strings.TrimSpace(overrideDir); dir != "" {
		for _, name := range []string{"theme.yaml", "theme.yml"} {
			path := filepath.Join(dir, name)
			b, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			if err := yaml.Unmarshal(b, &t); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			break
		}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Default returns the embedded theme without overrides.
func Default() *Theme {
	t, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded theme invalid: %v", err))
	}
	return t
}

func (t *Theme) validate() error {
	if t.SquarePx <= 0 {
		return fmt.Errorf("square_px must be positive, got %d", t.SquarePx)
	}
	if t.MarginPx < 0 {
		return fmt.Errorf("margin_px must not be negative, got %d", t.MarginPx)
	}
	if t.MarkerScale <= 0 || t.MarkerScale > 1 {
		return fmt.Errorf("marker_scale must be in (0,1], got %v", t.MarkerScale)
	}
	for name, v := range map[string]string{
		"light_square":     t.LightSquare,
		"dark_square":      t.DarkSquare,
		"highlight":        t.Highlight,
		"background":       t.Background,
		"white_piece_fill": t.WhitePieceFill,
		"white_piece_text": t.WhitePieceText,
		"black_piece_fill": t.BlackPieceFill,
		"black_piece_text": t.BlackPieceText,
		"label_text":       t.LabelText,
	} {
		if _, err := ParseHex(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ParseHex converts #RRGGBB or #RRGGBBAA into a color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	var parts [4]uint8
	parts[3] = 0xff
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		parts[i] = uint8(v)
	}
	return color.RGBA{R: parts[0], G: parts[1], B: parts[2], A: parts[3]}, nil
}
