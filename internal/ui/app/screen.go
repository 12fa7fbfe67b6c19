package app

import (
	"noticeboard/internal/board"
	"noticeboard/internal/storage/remote"
)

// screen queues board updates until the model drains them in Update.
type screen struct {
	events []any
}

var _ board.Listener = (*screen)(nil)

type (
	renderedEvent struct{ notices []remote.Notice }
	totalEvent    struct{ n int }
	openedEvent   struct{ notice remote.Notice }
	closedEvent   struct{}
	confirmEvent  struct{ prompt string }
	resolvedEvent struct{}
	toastEvent    struct{ toast board.Toast }
)

func (s *screen) NoticesRendered(list []remote.Notice) {
	s.events = append(s.events, renderedEvent{notices: list})
}
func (s *screen) TotalChanged(n int) { s.events = append(s.events, totalEvent{n: n}) }
func (s *screen) DialogOpened(n remote.Notice) { s.events = append(s.events, openedEvent{notice: n}) }
func (s *screen) DialogClosed() { s.events = append(s.events, closedEvent{}) }
func (s *screen) ConfirmRequested(p string) { s.events = append(s.events, confirmEvent{prompt: p}) }
func (s *screen) ConfirmResolved() { s.events = append(s.events, resolvedEvent{}) }
func (s *screen) Toasted(t board.Toast) { s.events = append(s.events, toastEvent{toast: t}) }

func (s *screen) take() []any {
	ev := s.events
	s.events = nil
	return ev
}
