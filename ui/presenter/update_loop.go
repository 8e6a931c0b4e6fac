package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Preview   *PreviewPresenter
	Luminance *LuminancePresenter
	Shoot     *ShootPresenter
	Schedule  func()
}

func NewLoop(preview *PreviewPresenter, lum *LuminancePresenter, shoot *ShootPresenter, schedule func()) *Loop {
	return &Loop{Preview: preview, Luminance: lum, Shoot: shoot, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Preview != nil {
		l.Preview.ProcessFrame()
	}
	if l.Luminance != nil {
		l.Luminance.Tick()
	}
	if l.Shoot != nil {
		l.Shoot.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
