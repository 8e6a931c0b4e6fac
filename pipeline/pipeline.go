package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/domain/analysis"
	"github.com/soocke/lumacam-go/domain/capture"
	"github.com/soocke/lumacam-go/ui/model"
)

const (
	pipelineStatsInterval = 10 * time.Second
	syntheticStep         = 8
)

// Pipeline owns the capture service, the analysis worker and the use case
// binding them. The Tk app and headless mode share it.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger

	Capture   capture.CaptureService
	Worker    *analysis.Worker
	Analysis  *analysis.ImageAnalysis
	Luminance *model.LuminanceModel

	samples chan analysis.Sample
}

// NewPipeline wires src through capture into analysis. Nothing is started.
func NewPipeline(cfg *config.Config, logger *slog.Logger, src capture.Source) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		cfg:       cfg,
		logger:    logger,
		Worker:    analysis.NewWorker("luminance", logger),
		Analysis:  analysis.NewImageAnalysis(cfg.AnalysisDeliveryMode, cfg.ImageQueueDepth, logger),
		Luminance: model.NewLuminanceModel(cfg.SummaryWindow),
		samples:   make(chan analysis.Sample, 16),
	}
	p.Capture = capture.NewCaptureService(logger, src, cfg, selectionFromConfig(cfg))
	return p
}

// NewSource builds the frame source named by cfg.Source.
func NewSource(cfg *config.Config) (capture.Source, error) {
	switch cfg.Source {
	case config.SourceScreen:
		return capture.NewScreenSource(), nil
	case config.SourceSynthetic:
		w, h := cfg.TargetResolution.Width, cfg.TargetResolution.Height
		if w <= 0 || h <= 0 {
			w, h = 320, 240
		}
		return capture.NewSyntheticSource(w, h, syntheticStep), nil
	default:
		return nil, fmt.Errorf("pipeline: unknown source %q: %w", cfg.Source, config.ErrInvalidConfig)
	}
}

func selectionFromConfig(cfg *config.Config) func() *image.Rectangle {
	if cfg.SelectionW <= 0 || cfg.SelectionH <= 0 {
		return func() *image.Rectangle { return nil }
	}
	r := image.Rect(cfg.SelectionX, cfg.SelectionY, cfg.SelectionX+cfg.SelectionW, cfg.SelectionY+cfg.SelectionH)
	return func() *image.Rectangle { return &r }
}

// Samples delivers luminance samples as they are produced. Samples are
// dropped when the reader falls behind.
func (p *Pipeline) Samples() <-chan analysis.Sample { return p.samples }

// StartAnalysis starts the worker, attaches a fresh luminance handler and
// routes captured frames to it. Frames are only converted while attached.
func (p *Pipeline) StartAnalysis() error {
	p.Worker.Start()
	h := analysis.LuminanceHandler(analysis.LuminanceAnalyzer{}, analysis.NewSampleLimiter(p.cfg.SampleInterval()), p.emit, p.logger)
	if err := p.Analysis.SetAnalyzer(p.Worker, h); err != nil {
		return fmt.Errorf("pipeline: attach analyzer: %w", err)
	}
	p.Capture.SetSink(p.Analysis)
	p.logger.Info("analysis started", "delivery", p.cfg.AnalysisDeliveryMode, "sample_interval", p.cfg.SampleInterval())
	return nil
}

// StopAnalysis unroutes capture, detaches the handler, then stops the worker.
func (p *Pipeline) StopAnalysis() {
	p.Capture.SetSink(nil)
	p.Analysis.ClearAnalyzer()
	p.Worker.Stop()
	p.Luminance.Reset()
	p.logger.Info("analysis stopped")
}

func (p *Pipeline) emit(s analysis.Sample) {
	p.Luminance.Record(s)
	select {
	case p.samples <- s:
	default:
	}
}

// Close stops capture, the analyzer and the worker in that order.
func (p *Pipeline) Close() {
	p.Capture.Stop()
	p.StopAnalysis()
}

// Run drives the pipeline without a UI until ctx is done, logging every
// sample and periodic statistics.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.StartAnalysis(); err != nil {
		return err
	}
	p.Capture.Start()
	defer p.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case s := <-p.samples:
				p.logger.Info("luminance",
					slog.Float64("luma", s.Luma),
					slog.Uint64("sequence", s.Sequence),
					slog.Time("timestamp", s.Timestamp))
			}
		}
	})
	g.Go(func() error {
		t := time.NewTicker(pipelineStatsInterval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				p.logStats()
			}
		}
	})
	err := g.Wait()
	p.logStats()
	return err
}

func (p *Pipeline) logStats() {
	cs := p.Capture.Stats()
	as := p.Analysis.Stats()
	sum, total := p.Luminance.Snapshot()
	p.logger.Info("pipeline.stats",
		slog.Uint64("captures", cs.Captures),
		slog.Uint64("skipped", cs.Skipped),
		slog.Uint64("published", cs.Published),
		slog.Float64("avg_capture_us", cs.AvgCaptureMicros),
		slog.Uint64("analyzed", as.Analyzed),
		slog.Uint64("dropped", as.Dropped),
		slog.Uint64("samples", total),
		slog.Float64("mean_luma", sum.Mean),
		slog.Float64("stddev_luma", sum.StdDev),
	)
}
