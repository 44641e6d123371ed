// Package config loads program configuration and prepares logging.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/elektrokombinacija/zoomview/internal/core"
	"github.com/elektrokombinacija/zoomview/internal/vis/state"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewerConfig struct {
		SwipeToClose    bool          `yaml:"swipe_to_close"`
		DoubleTapToZoom bool          `yaml:"double_tap_to_zoom"`
		LongPressDelay  time.Duration `yaml:"long_press_delay" validate:"gte=0"`
		DismissOffset   float64       `yaml:"dismiss_offset" validate:"gte=0"`
		MaxTextureSize  int           `yaml:"max_texture_size" validate:"gte=0"`
	}

	WindowConfig struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width" validate:"min=100"`
		Height int    `yaml:"height" validate:"min=100"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Viewer  ViewerConfig  `yaml:"viewer"`
		Window  WindowConfig  `yaml:"window"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Options converts viewer configuration into state machine options.
func (vc *ViewerConfig) Options() state.Options {
	opts := state.DefaultOptions()
	opts.SwipeToCloseEnabled = vc.SwipeToClose
	opts.DoubleTapToZoomEnabled = vc.DoubleTapToZoom
	if vc.LongPressDelay > 0 {
		opts.LongPressDelay = vc.LongPressDelay
	}
	opts.Dismiss = core.DismissPolicy{Velocity: core.SwipeCloseVelocity, Offset: vc.DismissOffset}
	return opts
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Unknown fields are errors, so yaml.Unmarshal cannot be used directly.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration from the template and returns it as a
// byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns the active configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
