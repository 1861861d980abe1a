package app

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/logger"
	"github.com/Faultbox/whatinput/internal/whatinput"
)

type snapshot struct {
	input   whatinput.Method
	intent  whatinput.Method
	element string
}

// status tracks what the window currently shows. Method changes arrive
// through listeners; focus changes have no notification and are polled.
type status struct {
	tracker *whatinput.Tracker
	dirty   atomic.Bool
	shown   snapshot
	first   bool
}

func newStatus(tr *whatinput.Tracker) *status {
	s := &status{tracker: tr, first: true}

	for _, ch := range []whatinput.Channel{whatinput.ChannelInput, whatinput.ChannelIntent} {
		tr.RegisterOnChange(whatinput.OnChange(func(m whatinput.Method) {
			logger.Info("method changed", zap.String("channel", string(ch)), zap.String("method", m.String()))
			s.dirty.Store(true)
		}), ch)
	}
	return s
}

// refresh returns the current state and whether it differs from what was
// last returned.
func (s *status) refresh() (snapshot, bool) {
	element := s.tracker.Element()
	if !s.dirty.Swap(false) && element == s.shown.element && !s.first {
		return s.shown, false
	}

	s.first = false
	s.shown = snapshot{
		input:   s.tracker.Ask(whatinput.ChannelInput),
		intent:  s.tracker.Ask(whatinput.ChannelIntent),
		element: element,
	}
	return s.shown, true
}
