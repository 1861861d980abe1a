package terminal

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

// Session connects a tcell screen to a tracker through a dispatcher.
type Session struct {
	screen     tcell.Screen
	tracker    *whatinput.Tracker
	dispatcher *whatinput.Dispatcher
	adapter    Adapter
	log        *zap.Logger
	events     int
}

// NewSession creates a session. The screen must already be initialized.
func NewSession(screen tcell.Screen, tr *whatinput.Tracker, d *whatinput.Dispatcher, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		screen:     screen,
		tracker:    tr,
		dispatcher: d,
		log:        log,
	}
}

// Status returns the current tracked state.
func (s *Session) Status() Status {
	return Status{
		Input:   s.tracker.Ask(whatinput.ChannelInput),
		Intent:  s.tracker.Ask(whatinput.ChannelIntent),
		Element: s.tracker.Element(),
		Classes: s.tracker.Classes(),
		Events:  s.events,
	}
}

// HandleEvent processes one tcell event and reports whether the session
// should end.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
			return true
		}
	}

	if wev, ok := s.adapter.Translate(ev); ok {
		s.events++
		if n := s.dispatcher.Dispatch(wev); n == 0 {
			s.log.Debug("event not observed", zap.String("type", wev.Type))
		}
	}

	Draw(s.screen, s.Status())
	return false
}

// Run draws the initial state and processes events until the user quits.
func (s *Session) Run() {
	Draw(s.screen, s.Status())
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if s.HandleEvent(ev) {
			return
		}
	}
}
