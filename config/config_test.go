package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Ratio{Num: 1, Den: 1}, cfg.TargetAspectRatio)
	assert.Equal(t, Size{Width: 640, Height: 640}, cfg.TargetResolution)
	assert.Equal(t, CaptureMinLatency, cfg.CaptureMode)
	assert.Equal(t, DeliveryKeepLatest, cfg.AnalysisDeliveryMode)
}

func TestValidate_RejectsUnknownModes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnalysisDeliveryMode = "queue_everything"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.CaptureMode = "zero_shutter"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Source = "webcam"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.TargetAspectRatio = Ratio{Num: 4, Den: 0}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.DisplayRotation = 45
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidate_ClampsNumericValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = -1
	cfg.ImageQueueDepth = 0
	cfg.SampleIntervalMs = -5
	cfg.SummaryWindow = 0
	cfg.RowPadding = -3
	cfg.OutputDir = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.FrameRate)
	assert.Equal(t, 6, cfg.ImageQueueDepth)
	assert.Equal(t, 0, cfg.SampleIntervalMs)
	assert.Equal(t, 30, cfg.SummaryWindow)
	assert.Equal(t, 0, cfg.RowPadding)
	assert.Equal(t, "photos", cfg.OutputDir)
}

func TestDurationsAndQuality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 20
	cfg.SampleIntervalMs = 250
	assert.Equal(t, 50*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, 250*time.Millisecond, cfg.SampleInterval())
	assert.Equal(t, 75, cfg.JPEGQuality())
	cfg.CaptureMode = CaptureMaxQuality
	assert.Equal(t, 95, cfg.JPEGQuality())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.Source = SourceSynthetic
	cfg.AnalysisDeliveryMode = DeliveryAcquireNext
	cfg.TargetAspectRatio = Ratio{Num: 16, Den: 9}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_InvalidModeReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"capture_mode":"burst"}`), 0o644))
	cfg, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, DefaultConfig(), cfg)
}
