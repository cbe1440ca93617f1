package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Loop    LoopConfig
	UI      UIConfig
	Metrics MetricsConfig
}

// LoopConfig holds dispatch loop and background worker settings.
type LoopConfig struct {
	QueueDepth int           `mapstructure:"queue_depth"`
	Workers    int           `mapstructure:"workers"`
	Interval   time.Duration `mapstructure:"interval"`
	Steps      int           `mapstructure:"steps"`
}

// UIConfig holds the board title and the widgets placed on it.
type UIConfig struct {
	Title   string
	Widgets []WidgetConfig
}

// WidgetConfig is the initial state of one widget.
type WidgetConfig struct {
	Name    string
	Label   string
	Visible bool
	Enabled bool
}

// MetricsConfig holds the prometheus listener. An empty Addr disables it.
type MetricsConfig struct {
	Addr string
}

func defaultWidgets() []map[string]any {
	return []map[string]any{
		{"name": "status", "label": "Status", "visible": true, "enabled": true},
		{"name": "progress", "label": "Progress", "visible": false, "enabled": false},
		{"name": "cancel", "label": "Cancel", "visible": true, "enabled": false},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("loop.queue_depth", 64)
	v.SetDefault("loop.workers", 2)
	v.SetDefault("loop.interval", "750ms")
	v.SetDefault("loop.steps", 12)
	v.SetDefault("ui.title", "uimutate")
	v.SetDefault("ui.widgets", defaultWidgets())
	v.SetDefault("metrics.addr", "")
}

// Default returns the built-in configuration, ignoring files and env.
func Default() (Config, error) {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal defaults: %w", err)
	}
	return c, nil
}

// Path resolves where Save writes: path itself, else UIMUTATE_CONFIG, else
// $HOME/.config/uimutate/config.toml.
func Path(path string) string {
	if path == "" {
		path = os.Getenv("UIMUTATE_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "uimutate", "config.toml")
	}
	return path
}

// Load reads configuration from file and env. An explicit path wins over
// UIMUTATE_CONFIG, which wins over $HOME/.config/uimutate/config.toml. Env var
// overrides use prefix UIMUTATE_.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	cfgPath := path
	if cfgPath == "" {
		cfgPath = os.Getenv("UIMUTATE_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "uimutate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("UIMUTATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine; an explicit one must exist and parse
		if cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the loop or the board cannot work with.
func (c Config) Validate() error {
	if c.Loop.QueueDepth <= 0 {
		return fmt.Errorf("loop.queue_depth must be positive, got %d", c.Loop.QueueDepth)
	}
	if c.Loop.Workers < 0 {
		return fmt.Errorf("loop.workers must not be negative, got %d", c.Loop.Workers)
	}
	if c.Loop.Workers > 0 && c.Loop.Interval <= 0 {
		return fmt.Errorf("loop.interval must be positive, got %s", c.Loop.Interval)
	}
	seen := make(map[string]bool, len(c.UI.Widgets))
	for i, w := range c.UI.Widgets {
		name := strings.ToLower(strings.TrimSpace(w.Name))
		if name == "" {
			return fmt.Errorf("ui.widgets[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("ui.widgets[%d]: duplicate name %q", i, w.Name)
		}
		seen[name] = true
	}
	return nil
}

// Save writes the provided config to path, or to the default location when
// path is empty, creating the config directory if needed.
func Save(cfg Config, path string) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	widgets := make([]map[string]any, 0, len(cfg.UI.Widgets))
	for _, w := range cfg.UI.Widgets {
		widgets = append(widgets, map[string]any{
			"name":    w.Name,
			"label":   w.Label,
			"visible": w.Visible,
			"enabled": w.Enabled,
		})
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("loop.queue_depth", cfg.Loop.QueueDepth)
	v.Set("loop.workers", cfg.Loop.Workers)
	v.Set("loop.interval", cfg.Loop.Interval.String())
	v.Set("loop.steps", cfg.Loop.Steps)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.widgets", widgets)
	v.Set("metrics.addr", cfg.Metrics.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
