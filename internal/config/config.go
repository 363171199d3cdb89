package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// minCaptionRunes fits the longest caption placeholder, "BOTTOM".
const minCaptionRunes = 6

// Config holds application configuration.
type Config struct {
	Window   WindowConfig
	Caption  CaptionConfig
	Keyboard KeyboardConfig
	Camera   CameraConfig
	Share    ShareConfig
	Log      LogConfig
}

type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// CaptionConfig sizes are in pixels at UI scale 1.
type CaptionConfig struct {
	FontSize    float64 `mapstructure:"font_size"`
	MinFontSize float64 `mapstructure:"min_font_size"`
	StrokeWidth int     `mapstructure:"stroke_width"`
	MaxRunes    int     `mapstructure:"max_runes"`
}

type KeyboardConfig struct {
	Height float64
}

// CameraConfig describes the capture command. {out} in Command is replaced by
// the path the command must write the captured image to.
type CameraConfig struct {
	Command string
	Timeout time.Duration
}

type ShareConfig struct {
	Dir string
}

type LogConfig struct {
	Debug bool
}

// Load reads configuration from path (or $MEMEME_CONFIG, or the user config
// dir) and the environment. Env var overrides use prefix MEMEME_. A missing
// config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("window.width", 414)
	v.SetDefault("window.height", 736)
	v.SetDefault("window.title", "MemeMe")
	v.SetDefault("caption.font_size", 40.0)
	v.SetDefault("caption.min_font_size", 17.0)
	v.SetDefault("caption.stroke_width", 3)
	v.SetDefault("caption.max_runes", 64)
	v.SetDefault("keyboard.height", 260.0)
	v.SetDefault("camera.command", "")
	v.SetDefault("camera.timeout", 15*time.Second)
	v.SetDefault("share.dir", filepath.Join(home, "Pictures", "MemeMe"))
	v.SetDefault("log.debug", false)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("MEMEME_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "mememe"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MEMEME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
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

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Caption.FontSize <= 0 {
		return fmt.Errorf("config: caption.font_size must be positive, got %v", c.Caption.FontSize)
	}
	if c.Caption.MinFontSize <= 0 || c.Caption.MinFontSize > c.Caption.FontSize {
		return fmt.Errorf("config: caption.min_font_size must be in (0, %v], got %v", c.Caption.FontSize, c.Caption.MinFontSize)
	}
	if c.Caption.StrokeWidth < 0 {
		return fmt.Errorf("config: caption.stroke_width must not be negative, got %d", c.Caption.StrokeWidth)
	}
	if c.Caption.MaxRunes < minCaptionRunes {
		return fmt.Errorf("config: caption.max_runes must be at least %d, got %d", minCaptionRunes, c.Caption.MaxRunes)
	}
	if c.Keyboard.Height < 0 {
		return fmt.Errorf("config: keyboard.height must not be negative, got %v", c.Keyboard.Height)
	}
	if c.Camera.Command != "" && !strings.Contains(c.Camera.Command, "{out}") {
		return fmt.Errorf("config: camera.command must contain {out}")
	}
	return nil
}
