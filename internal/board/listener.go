package board

import "noticeboard/internal/storage/remote"

// Listener receives view updates from a Board. Calls happen on the goroutine
// that invoked the Board operation.
type Listener interface {
	// NoticesRendered replaces the rendered cards. An empty list means the
	// empty placeholder is shown.
	NoticesRendered(list []remote.Notice)
	TotalChanged(n int)
	DialogOpened(n remote.Notice)
	DialogClosed()
	ConfirmRequested(prompt string)
	ConfirmResolved()
	Toasted(t Toast)
}

// NopListener ignores every update. Embed it to implement part of Listener.
type NopListener struct{}

func (NopListener) NoticesRendered([]remote.Notice) {}
func (NopListener) TotalChanged(int) {}
func (NopListener) DialogOpened(remote.Notice) {}
func (NopListener) DialogClosed() {}
func (NopListener) ConfirmRequested(string) {}
func (NopListener) ConfirmResolved() {}
func (NopListener) Toasted(Toast) {}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a function that removes it.
func (b *Board) Subscribe(l Listener) (unsubscribe func()) {
	b.nextSubID++
	id := b.nextSubID
	b.subs = append(b.subs, subscription{id: id, l: l})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Board) emit(fn func(Listener)) {
	for _, s := range b.subs {
		fn(s.l)
	}
}

func (b *Board) toast(level Level, text string) {
	t := NewToast(level, text)
	b.emit(func(l Listener) { l.Toasted(t) })
}
