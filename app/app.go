package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/lumacam-go/config"
	"github.com/soocke/lumacam-go/domain/capture"
	"github.com/soocke/lumacam-go/ui/presenter"
)

const tick = 50 * time.Millisecond

// Application runs the Tk front end on top of a Pipeline.
type Application struct {
	c       *AppContainer
	afterID string
}

// NewApplication configures the main window. The capture service starts with Start;
// analysis stays off until toggled.
func NewApplication(title string, width, height int, cfg *config.Config, logger *slog.Logger, src capture.Source) *Application {
	a := &Application{c: BuildContainer(cfg, logger, src)}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, starts capturing and blocks in the Tk event loop.
func (a *Application) Start() {
	c := a.c
	c.RootView.Build(c.ShootPresenter.Shoot, c.AnalysisPresenter.Toggle, a.exitHandler)
	c.Loop = presenter.NewLoop(c.PreviewPresenter, c.LuminancePresenter, c.ShootPresenter, a.scheduleUpdate)
	c.Pipeline.Capture.Start()
	c.Logger.Info("app started", "source", c.Config.Source, "output_dir", c.Still.Dir())
	a.scheduleUpdate()
	App.Wait()
}

func (a *Application) scheduleUpdate() {
	// TclAfter keeps updates on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *Application) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.AnalysisPresenter.Disable()
	a.c.Pipeline.Close()
	a.c.Logger.Info("app exit")
	Destroy(App)
}
