package speedcam

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration holds the measurement parameters for a speed detection
// run.  Coordinates are X pixel positions of the two vertical measurement
// lines, Distance is the real world distance between those lines.
type Configuration struct {
	// LeftCoordinate is the pixel X position of the left measurement line
	LeftCoordinate int `yaml:"left_coordinate"`
	// RightCoordinate is the pixel X position of the right measurement
	// line, must be greater than LeftCoordinate
	RightCoordinate int `yaml:"right_coordinate"`
	// Distance is the real world distance between the left and right
	// measurement lines in centimeters
	Distance float64 `yaml:"distance"`
	// FPS is the frame rate of the video/camera
	FPS float64 `yaml:"fps"`
	// DownsizeVideo is an optional target frame width in pixels to resize
	// video to before detection, 0 means no resizing
	DownsizeVideo int `yaml:"downsize_video"`
}

// Validate checks the configuration parameters and returns an error
// describing all invalid values
func (c Configuration) Validate() error {

	var errs []string

	if c.LeftCoordinate < 0 {
		errs = append(errs, "left_coordinate must be >= 0")
	}

	if c.RightCoordinate <= c.LeftCoordinate {
		errs = append(errs, fmt.Sprintf("right_coordinate (%d) must be > left_coordinate (%d)",
			c.RightCoordinate, c.LeftCoordinate))
	}

	if c.Distance <= 0 {
		errs = append(errs, "distance must be > 0")
	}

	if c.FPS <= 0 {
		errs = append(errs, "fps must be > 0")
	}

	if c.DownsizeVideo < 0 {
		errs = append(errs, "downsize_video must be > 0 if specified")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	return nil
}

// DistanceMeters returns the measurement distance converted from
// centimeters to meters
func (c Configuration) DistanceMeters() float64 {
	return c.Distance / 100.0
}

// ScaledTo returns a copy of the configuration with the measurement line
// coordinates scaled for frames resized from originalWidth down to the
// DownsizeVideo width, along with the scale factor applied.  Distance and
// FPS are unchanged as real world values.  If no resizing applies the
// configuration is returned as is with a factor of 1.
func (c Configuration) ScaledTo(originalWidth int) (Configuration, float64) {

	if c.DownsizeVideo == 0 || originalWidth == 0 ||
		c.DownsizeVideo == originalWidth {
		return c, 1.0
	}

	factor := float64(c.DownsizeVideo) / float64(originalWidth)

	scaled := c
	scaled.LeftCoordinate = int(float64(c.LeftCoordinate) * factor)
	scaled.RightCoordinate = int(float64(c.RightCoordinate) * factor)

	return scaled, factor
}

// LoadConfig reads the measurement configuration from the given YAML file
// and validates it
func LoadConfig(file string) (Configuration, error) {

	var cfg Configuration

	// read the file
	data, err := os.ReadFile(file)

	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)

	if err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", file, err)
	}

	err = cfg.Validate()

	if err != nil {
		return cfg, fmt.Errorf("config file %s: %w", file, err)
	}

	return cfg, nil
}
