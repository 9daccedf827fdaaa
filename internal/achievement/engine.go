// Package achievement turns transaction creation into a daily streak and a
// points score, with one-off bonuses at streak milestones.
package achievement

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/lifeledger/internal/model"
)

// Milestone is a bonus paid the first time a streak run reaches Threshold days.
type Milestone struct {
	Message   string
	Threshold int
	Bonus     int
}

type milestoneRule struct {
	flag      func(*model.Milestones) *bool
	threshold int
	bonus     int
}

// Checked in ascending order.
var milestoneRules = []milestoneRule{
	{threshold: 7, bonus: 10, flag: func(m *model.Milestones) *bool { return &m.Streak7 }},
	{threshold: 14, bonus: 20, flag: func(m *model.Milestones) *bool { return &m.Streak14 }},
	{threshold: 21, bonus: 30, flag: func(m *model.Milestones) *bool { return &m.Streak21 }},
	{threshold: 30, bonus: 50, flag: func(m *model.Milestones) *bool { return &m.Streak30 }},
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source. Only the calendar date is used.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMilestoneObserver registers fn to be told about newly reached milestones.
func WithMilestoneObserver(fn func(Milestone)) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// Engine owns the achievement state. It is not safe for concurrent use.
type Engine struct {
	now       func() time.Time
	observers []func(Milestone)
	state     model.AchievementState
}

// NewEngine resumes from a persisted state.
func NewEngine(state model.AchievementState, opts ...Option) *Engine {
	e := &Engine{
		state: state.Clone(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() model.AchievementState {
	return e.state.Clone()
}

// RecordTransaction registers one successful transaction creation. Every call
// earns a point; at most one streak step happens per calendar day. It returns
// the milestone reached by this call, if any.
func (e *Engine) RecordTransaction() (Milestone, bool) {
	today := model.FormatDate(e.now())
	s := &e.state

	var reached Milestone
	var ok bool

	switch {
	case s.LastRecordDate == nil:
		e.startRun(today)

	case *s.LastRecordDate == today:
		// Already counted today.

	default:
		gap, err := model.DaysBetween(*s.LastRecordDate, today)
		switch {
		case err != nil:
			slog.Warn("unreadable last record date, restarting streak",
				"last_record_date", *s.LastRecordDate,
				"error", err)
			e.startRun(today)
		case gap == 1:
			s.CurrentStreak++
			s.LastRecordDate = &today
			reached, ok = e.checkMilestones()
		case gap > 1:
			e.startRun(today)
		default:
			// The clock moved backwards; keep the streak as it is.
			slog.Debug("record date before last record date",
				"today", today,
				"last_record_date", *s.LastRecordDate)
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.TotalPoints++
	s.TotalRecords++

	if ok {
		for _, fn := range e.observers {
			fn(reached)
		}
	}
	return reached, ok
}

// startRun begins a new streak run, forgetting milestones of the old one.
func (e *Engine) startRun(today string) {
	e.state.CurrentStreak = 1
	e.state.LastRecordDate = &today
	e.state.Milestones = model.Milestones{}
}

func (e *Engine) checkMilestones() (Milestone, bool) {
	s := &e.state
	for _, rule := range milestoneRules {
		flag := rule.flag(&s.Milestones)
		if s.CurrentStreak != rule.threshold || *flag {
			continue
		}
		*flag = true
		s.TotalPoints += rule.bonus

		m := Milestone{
			Threshold: rule.threshold,
			Bonus:     rule.bonus,
			Message:   fmt.Sprintf("%d-day streak! +%d points", rule.threshold, rule.bonus),
		}
		slog.Info("milestone reached", "streak", rule.threshold, "bonus", rule.bonus)
		return m, true
	}
	return Milestone{}, false
}
