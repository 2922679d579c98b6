package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/luckywheel/pkg/canvas"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// DefaultFile is the project file read when no path is given.
const DefaultFile = "luckywheel.yaml"

// Defaults for the render section.
const (
	DefaultFPS       = 60
	DefaultPrize     = 7
	DefaultStopAfter = 3 * time.Second
	DefaultHold      = time.Second
)

// Config represents the optional luckywheel.yaml configuration.
type Config struct {
	Wheel  wheel.Config `yaml:"wheel"`
	Canvas CanvasConfig `yaml:"canvas"`
	Render RenderConfig `yaml:"render"`
}

// CanvasConfig contains raster output settings.
type CanvasConfig struct {
	Width      float64 `yaml:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty"`
	Padding    float64 `yaml:"padding,omitempty"`
	PixelRatio float64 `yaml:"pixel_ratio,omitempty"`
	FontSize   float64 `yaml:"font_size,omitempty"`
	ImageDir   string  `yaml:"image_dir,omitempty"`
}

// RenderConfig contains settings for one recorded spin.
type RenderConfig struct {
	FPS       int           `yaml:"fps,omitempty"`
	Prize     *int          `yaml:"prize,omitempty"`
	StopAfter time.Duration `yaml:"stop_after,omitempty"`
	Hold      time.Duration `yaml:"hold,omitempty"`
	GIF       string        `yaml:"gif,omitempty"`
	PNG       string        `yaml:"png,omitempty"`
	WAV       string        `yaml:"wav,omitempty"`
	HTML      string        `yaml:"html,omitempty"`
}

// Resolved contains configuration with every default applied.
type Resolved struct {
	Source    string
	Wheel     wheel.Config
	Canvas    canvas.Options
	FPS       int
	Prize     int
	StopAfter time.Duration
	Hold      time.Duration
	GIF       string
	PNG       string
	WAV       string
	HTML      string
}

// LoadOptional reads path if present. A missing file yields an empty
// configuration.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parse(path, data)
}

// Load reads path, which must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads the configuration and applies defaults. An empty path
// reads DefaultFile from the working directory if it exists.
func Resolve(path string) (*Resolved, error) {
	var cfg *Config
	var err error
	source := path
	if path == "" {
		source = DefaultFile
		cfg, err = LoadOptional(DefaultFile)
	} else {
		cfg, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	return cfg.resolve(source)
}

func (c *Config) resolve(source string) (*Resolved, error) {
	wc := c.Wheel
	if len(wc.Segments) == 0 {
		wc.Segments = wheel.DemoSegments()
	}
	wc = wc.WithDefaults()
	if err := wc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	r := &Resolved{
		Source: source,
		Wheel:  wc,
		Canvas: canvas.Options{
			Width:      c.Canvas.Width,
			Height:     c.Canvas.Height,
			Padding:    c.Canvas.Padding,
			PixelRatio: c.Canvas.PixelRatio,
			FontSize:   c.Canvas.FontSize,
		},
		FPS:       c.Render.FPS,
		Prize:     DefaultPrize,
		StopAfter: c.Render.StopAfter,
		Hold:      c.Render.Hold,
		GIF:       c.Render.GIF,
		PNG:       c.Render.PNG,
		WAV:       c.Render.WAV,
		HTML:      c.Render.HTML,
	}
	if c.Canvas.ImageDir != "" {
		r.Canvas.Images = canvas.DirSource{Dir: c.Canvas.ImageDir}
	}
	if c.Render.Prize != nil {
		r.Prize = *c.Render.Prize
	}
	if r.FPS <= 0 {
		r.FPS = DefaultFPS
	}
	if r.StopAfter <= 0 {
		r.StopAfter = DefaultStopAfter
	}
	if r.Hold <= 0 {
		r.Hold = DefaultHold
	}
	if r.Prize >= len(wc.Segments) {
		return nil, fmt.Errorf("%s: prize %d out of range for %d segments", source, r.Prize, len(wc.Segments))
	}
	return r, nil
}
