package race

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Config carries the animation, palette and transport settings.
type Config struct {
	Animation struct {
		DisplayCount      int     `yaml:"displayCount"`
		Buffer            int     `yaml:"buffer"`
		FramesPerInterval int     `yaml:"framesPerInterval"`
		FrameRate         float64 `yaml:"frameRate"`
	} `yaml:"animation"`
	Palette struct {
		Saturation float64       `yaml:"saturation"`
		Luminance  float64       `yaml:"luminance"`
		Gradient   GradientTable `yaml:"gradient"`
	} `yaml:"palette"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topic    string `yaml:"topic"`
	} `yaml:"mqtt"`
}

// NewConfig creates a Config with workable defaults; a YAML decode on top
// overrides them.
func NewConfig() *Config {
	c := new(Config)
	c.Animation.DisplayCount = 10
	c.Animation.Buffer = 5
	c.Animation.FramesPerInterval = 15
	c.Animation.FrameRate = 30.0
	c.Palette.Saturation = 0.9
	c.Palette.Luminance = 0.5
	c.Palette.Gradient = DefaultGradient()
	return c
}

// Validate rejects animation parameters the engine cannot run with.
func (c *Config) Validate() error {
	if c.Animation.DisplayCount < 1 {
		return fmt.Errorf("displayCount %d: must be at least 1", c.Animation.DisplayCount)
	}
	if c.Animation.Buffer < 0 {
		return fmt.Errorf("buffer %d: must not be negative", c.Animation.Buffer)
	}
	if c.Animation.FramesPerInterval < 1 {
		return fmt.Errorf("framesPerInterval %d: must be at least 1", c.Animation.FramesPerInterval)
	}
	if c.Animation.FrameRate <= 0 {
		return fmt.Errorf("frameRate %v: must be positive", c.Animation.FrameRate)
	}
	if len(c.Palette.Gradient) < 2 {
		return fmt.Errorf("palette gradient needs at least 2 stops, got %d", len(c.Palette.Gradient))
	}
	return nil
}

// Pool samples the configured gradient into the colour pool: trackedCount
// colours plus the spare that keeps a wrapping gradient's ends apart.
func (c *Config) Pool(trackedCount int) []colorful.Color {
	return c.Palette.Gradient.Palette(trackedCount+1, c.Palette.Saturation, c.Palette.Luminance)
}
