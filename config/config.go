package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Frame sources understood by the capture layer.
const (
	SourceScreen    = "screen"
	SourceSynthetic = "synthetic"
)

// CaptureMode selects the still-capture trade-off between speed and quality.
type CaptureMode string

const (
	CaptureMinLatency CaptureMode = "min_latency"
	CaptureMaxQuality CaptureMode = "max_quality"
)

// DeliveryMode controls how frames reach the analysis worker.
type DeliveryMode string

const (
	// DeliveryKeepLatest keeps one pending frame; newer frames replace it.
	DeliveryKeepLatest DeliveryMode = "keep_latest"
	// DeliveryAcquireNext queues up to ImageQueueDepth frames and blocks the producer when full.
	DeliveryAcquireNext DeliveryMode = "acquire_next"
)

// Ratio is a width:height aspect ratio.
type Ratio struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

// Float returns Num/Den, or 0 for an unset ratio.
func (r Ratio) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Size is a pixel resolution.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Config holds runtime configuration for capture, analysis and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug   bool   `json:"debug"`
	LogFile string `json:"log_file"`

	// Frame source
	Source     string `json:"source"`
	FrameRate  int    `json:"frame_rate"`
	RowPadding int    `json:"row_padding"`

	// Use case configuration
	TargetAspectRatio    Ratio        `json:"target_aspect_ratio"`
	TargetResolution     Size         `json:"target_resolution"`
	CaptureMode          CaptureMode  `json:"capture_mode"`
	AnalysisDeliveryMode DeliveryMode `json:"analysis_delivery_mode"`
	ImageQueueDepth      int          `json:"image_queue_depth"`

	// Analysis
	SampleIntervalMs int `json:"sample_interval_ms"`
	SummaryWindow    int `json:"summary_window"`

	// Preview / still capture
	DisplayRotation int    `json:"display_rotation"`
	OutputDir       string `json:"output_dir"`

	// Selection rectangle for the screen source
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                false,
		Source:               SourceScreen,
		FrameRate:            30,
		RowPadding:           0,
		TargetAspectRatio:    Ratio{Num: 1, Den: 1},
		TargetResolution:     Size{Width: 640, Height: 640},
		CaptureMode:          CaptureMinLatency,
		AnalysisDeliveryMode: DeliveryKeepLatest,
		ImageQueueDepth:      6,
		SampleIntervalMs:     1000,
		SummaryWindow:        30,
		DisplayRotation:      0,
		OutputDir:            "photos",
	}
}

// Validate rejects unknown modes and malformed ratios, and clamps numeric
// values to safe ranges.
func (c *Config) Validate() error {
	switch c.Source {
	case "":
		c.Source = SourceScreen
	case SourceScreen, SourceSynthetic:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	switch c.CaptureMode {
	case "":
		c.CaptureMode = CaptureMinLatency
	case CaptureMinLatency, CaptureMaxQuality:
	default:
		return fmt.Errorf("%w: unknown capture mode %q", ErrInvalidConfig, c.CaptureMode)
	}
	switch c.AnalysisDeliveryMode {
	case "":
		c.AnalysisDeliveryMode = DeliveryKeepLatest
	case DeliveryKeepLatest, DeliveryAcquireNext:
	default:
		return fmt.Errorf("%w: unknown delivery mode %q", ErrInvalidConfig, c.AnalysisDeliveryMode)
	}
	if c.TargetAspectRatio == (Ratio{}) {
		c.TargetAspectRatio = Ratio{Num: 1, Den: 1}
	}
	if c.TargetAspectRatio.Num <= 0 || c.TargetAspectRatio.Den <= 0 {
		return fmt.Errorf("%w: aspect ratio %d:%d", ErrInvalidConfig, c.TargetAspectRatio.Num, c.TargetAspectRatio.Den)
	}
	switch c.DisplayRotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("%w: display rotation %d", ErrInvalidConfig, c.DisplayRotation)
	}
	if c.TargetResolution.Width < 0 || c.TargetResolution.Height < 0 {
		c.TargetResolution = Size{}
	}
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		c.FrameRate = 30
	}
	if c.RowPadding < 0 {
		c.RowPadding = 0
	}
	if c.ImageQueueDepth <= 0 {
		c.ImageQueueDepth = 6
	}
	if c.SampleIntervalMs < 0 {
		c.SampleIntervalMs = 0
	}
	if c.SummaryWindow <= 0 {
		c.SummaryWindow = 30
	}
	if c.OutputDir == "" {
		c.OutputDir = "photos"
	}
	return nil
}

// FrameInterval is the pause between two capture iterations.
func (c *Config) FrameInterval() time.Duration {
	if c == nil || c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// SampleInterval is the minimum spacing between analysed frames; zero analyses every frame.
func (c *Config) SampleInterval() time.Duration {
	if c == nil {
		return 0
	}
	return time.Duration(c.SampleIntervalMs) * time.Millisecond
}

// JPEGQuality maps the capture mode to an encoder quality.
func (c *Config) JPEGQuality() int {
	if c != nil && c.CaptureMode == CaptureMaxQuality {
		return 95
	}
	return 75
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON or validation error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
