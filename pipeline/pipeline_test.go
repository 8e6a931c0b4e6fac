package pipeline

import (
	"context"
	"image"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/domain/capture"
)

func syntheticConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Source = config.SourceSynthetic
	cfg.FrameRate = 200
	cfg.TargetResolution = config.Size{Width: 16, Height: 16}
	cfg.SampleIntervalMs = 0
	cfg.OutputDir = t.TempDir()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewSource(t *testing.T) {
	cfg := config.DefaultConfig()
	src, err := NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &capture.ScreenSource{}, src)

	cfg.Source = config.SourceSynthetic
	cfg.TargetResolution = config.Size{}
	src, err = NewSource(cfg)
	require.NoError(t, err)
	syn, ok := src.(*capture.SyntheticSource)
	require.True(t, ok)
	assert.Equal(t, 320, syn.Width)

	cfg.Source = "webcam"
	_, err = NewSource(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSelectionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Nil(t, selectionFromConfig(cfg)())

	cfg.SelectionX, cfg.SelectionY, cfg.SelectionW, cfg.SelectionH = 10, 20, 30, 40
	r := selectionFromConfig(cfg)()
	require.NotNil(t, r)
	assert.Equal(t, image.Rect(10, 20, 40, 60), *r)
}

func TestPipeline_StartStopAnalysis(t *testing.T) {
	cfg := syntheticConfig(t)
	src, err := NewSource(cfg)
	require.NoError(t, err)
	p := NewPipeline(cfg, nil, src)

	require.NoError(t, p.StartAnalysis())
	p.Capture.Start()

	var got []float64
	deadline := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case s := <-p.Samples():
			got = append(got, s.Luma)
		case <-deadline:
			t.Fatalf("only %d samples before deadline", len(got))
		}
	}
	for _, v := range got {
		// Uniform grey frames map to integral luma on the synthetic ramp.
		assert.Zero(t, math.Mod(v, syntheticStep), "luma %v off the ramp", v)
	}

	p.Close()
	assert.False(t, p.Capture.Running())
	assert.False(t, p.Worker.Running())
	assert.False(t, p.Analysis.HasAnalyzer())
	// Closing twice is harmless.
	p.Close()
}

func TestPipeline_RunUntilCancelled(t *testing.T) {
	cfg := syntheticConfig(t)
	src, err := NewSource(cfg)
	require.NoError(t, err)
	p := NewPipeline(cfg, nil, src)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, total := p.Luminance.Snapshot()
		return total >= 3
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, p.Capture.Running())
	assert.False(t, p.Worker.Running())
	assert.Greater(t, p.Analysis.Stats().Analyzed, uint64(0))
}

func TestPipeline_ThrottledSamples(t *testing.T) {
	cfg := syntheticConfig(t)
	cfg.SampleIntervalMs = 50
	p := NewPipeline(cfg, nil, capture.NewSyntheticSource(8, 8, 1))
	require.NoError(t, p.StartAnalysis())
	p.Capture.Start()
	time.Sleep(120 * time.Millisecond)
	p.Close()

	// At 200fps over ~120ms at most three frames pass a 50ms limiter.
	_, total := p.Luminance.Snapshot()
	assert.LessOrEqual(t, total, uint64(4))
	assert.GreaterOrEqual(t, total, uint64(1))
}

func TestPipeline_NoConversionWhileAnalysisOff(t *testing.T) {
	cfg := syntheticConfig(t)
	p := NewPipeline(cfg, nil, capture.NewSyntheticSource(8, 8, 1))
	p.Capture.Start()
	defer p.Close()

	require.Eventually(t, func() bool { return p.Capture.Stats().Captures >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, p.Capture.Stats().Published, "frames must not be converted without an analyzer")

	require.NoError(t, p.StartAnalysis())
	require.Eventually(t, func() bool { return p.Capture.Stats().Published > 0 }, 2*time.Second, 5*time.Millisecond)

	p.StopAnalysis()
	// Let an iteration that picked up the sink before StopAnalysis finish.
	captures := p.Capture.Stats().Captures
	require.Eventually(t, func() bool { return p.Capture.Stats().Captures >= captures+2 }, 2*time.Second, 5*time.Millisecond)
	published := p.Capture.Stats().Published
	captures = p.Capture.Stats().Captures
	require.Eventually(t, func() bool { return p.Capture.Stats().Captures >= captures+3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, published, p.Capture.Stats().Published)
}
