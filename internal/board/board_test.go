package board

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noticeboard/internal/storage/remote"
)

type call struct {
	method  string
	id      int64
	payload remote.Payload
}

type fakeRemote struct {
	notices   []remote.Notice
	listErr   error
	updateErr error
	deleteErr error
	calls     []call
}

func (f *fakeRemote) List(context.Context) ([]remote.Notice, error) {
	f.calls = append(f.calls, call{method: http.MethodGet})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return clone(f.notices), nil
}

func (f *fakeRemote) Update(_ context.Context, id int64, p remote.Payload) error {
	f.calls = append(f.calls, call{method: http.MethodPut, id: id, payload: p})
	return f.updateErr
}

func (f *fakeRemote) Delete(_ context.Context, id int64) error {
	f.calls = append(f.calls, call{method: http.MethodDelete, id: id})
	return f.deleteErr
}

func (f *fakeRemote) methods() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.method)
	}
	return out
}

type recorder struct {
	rendered [][]remote.Notice
	totals   []int
	opened   []remote.Notice
	closed   int
	prompts  []string
	resolved int
	toasts   []Toast
}

func (r *recorder) NoticesRendered(list []remote.Notice) { r.rendered = append(r.rendered, list) }
func (r *recorder) TotalChanged(n int) { r.totals = append(r.totals, n) }
func (r *recorder) DialogOpened(n remote.Notice) { r.opened = append(r.opened, n) }
func (r *recorder) DialogClosed() { r.closed++ }
func (r *recorder) ConfirmRequested(p string) { r.prompts = append(r.prompts, p) }
func (r *recorder) ConfirmResolved() { r.resolved++ }
func (r *recorder) Toasted(t Toast) { r.toasts = append(r.toasts, t) }

func (r *recorder) lastRendered() []remote.Notice {
	if len(r.rendered) == 0 {
		return nil
	}
	return r.rendered[len(r.rendered)-1]
}

func (r *recorder) lastTotal() int {
	if len(r.totals) == 0 {
		return -1
	}
	return r.totals[len(r.totals)-1]
}

func (r *recorder) lastToast() Toast {
	if len(r.toasts) == 0 {
		return Toast{}
	}
	return r.toasts[len(r.toasts)-1]
}

func newTestBoard(t *testing.T, f *fakeRemote, confirm Confirmer) (*Board, *recorder) {
	t.Helper()

	logger := zerolog.Nop()
	b := New(Deps{Remote: f, Confirm: confirm, Logger: &logger})
	rec := &recorder{}
	b.Subscribe(rec)
	return b, rec
}

func sample() []remote.Notice {
	return []remote.Notice{
		{ID: 1, Title: "Meeting", Description: "x"},
		{ID: 12, Title: "Holiday schedule", Description: "office closed"},
		{ID: 30, Title: "Fire drill", Description: "friday"},
	}
}

func TestLoadReplacesCache(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)

	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, sample(), b.Notices())
	assert.Len(t, rec.lastRendered(), 3)
	assert.Equal(t, 3, rec.lastTotal())
	assert.Equal(t, 3, b.Total())

	f.notices = sample()[:1]
	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, sample()[:1], b.Notices())
	assert.Len(t, rec.lastRendered(), 1)
	assert.Equal(t, 1, rec.lastTotal())
}

func TestLoadFailureKeepsCache(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))
	renders := len(rec.rendered)

	f.listErr = errors.WithStack(&remote.StatusError{Method: http.MethodGet, Path: "/notices", StatusCode: 500})
	err := b.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
	assert.Equal(t, sample(), b.Notices())
	assert.Len(t, rec.rendered, renders)
	assert.Equal(t, LevelError, rec.lastToast().Level)
	assert.Equal(t, MsgLoadFailed, rec.lastToast().Text)
}

func TestLoadDiscardsStaleResult(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)

	older := b.NewLoad()
	newer := b.NewLoad()

	oldRes := older.Do(context.Background())
	f.notices = sample()[:2]
	newRes := newer.Do(context.Background())

	require.NoError(t, b.Loaded(newRes))
	require.NoError(t, b.Loaded(oldRes))

	assert.Equal(t, sample()[:2], b.Notices())
	assert.Len(t, rec.rendered, 1)
}

func TestLoadEmptyRendersPlaceholder(t *testing.T) {
	f := &fakeRemote{notices: []remote.Notice{}}
	b, rec := newTestBoard(t, f, nil)

	require.NoError(t, b.Load(context.Background()))

	require.Len(t, rec.rendered, 1)
	assert.Empty(t, rec.lastRendered())
	assert.Equal(t, 0, rec.lastTotal())
}

func TestFilter(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	t.Run("title case-insensitive", func(t *testing.T) {
		upper := b.Filter("HOLIDAY")
		lower := b.Filter("holiday")
		assert.Equal(t, upper, lower)
		require.Len(t, lower, 1)
		assert.Equal(t, int64(12), lower[0].ID)
		assert.Equal(t, 1, rec.lastTotal())
	})

	t.Run("partial id", func(t *testing.T) {
		got := b.Filter("1")
		ids := []int64{}
		for _, n := range got {
			ids = append(ids, n.ID)
		}
		assert.Equal(t, []int64{1, 12}, ids)
	})

	t.Run("empty query restores", func(t *testing.T) {
		b.Filter("zzz")
		got := b.Filter("   ")
		assert.Equal(t, sample(), got)
		assert.Equal(t, 3, rec.lastTotal())
		assert.Equal(t, "", b.Query())
	})

	t.Run("no server round trip", func(t *testing.T) {
		calls := len(f.calls)
		b.Filter("fire")
		assert.Len(t, f.calls, calls)
	})
}

func TestFilterScenario(t *testing.T) {
	f := &fakeRemote{notices: []remote.Notice{{ID: 1, Title: "Meeting", Description: "x"}}}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	got := b.Filter("meet")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got = b.Filter("zzz")
	assert.Empty(t, got)
	assert.Empty(t, rec.lastRendered())
	assert.Equal(t, 0, rec.lastTotal())
}

func TestLoadClearsQuery(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	b.Filter("fire")
	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, "", b.Query())
	assert.Len(t, rec.lastRendered(), 3)
	assert.Equal(t, 3, rec.lastTotal())
}

func TestBeginEditUnknownID(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	err := b.BeginEdit(99)

	require.Error(t, err)
	assert.Equal(t, KindNotFoundLocal, KindOf(err))
	assert.False(t, b.DialogOpen())
	assert.Empty(t, rec.opened)
	assert.Equal(t, MsgNotFound, rec.lastToast().Text)
	assert.Equal(t, LevelError, rec.lastToast().Level)
}

func TestSubmitWithoutSession(t *testing.T) {
	payloads := []remote.Payload{
		{},
		{Title: "New", Description: "y"},
		{Title: "  padded  ", Description: "\t"},
	}

	for _, p := range payloads {
		f := &fakeRemote{notices: sample()}
		b, rec := newTestBoard(t, f, nil)

		err := b.SubmitEdit(context.Background(), p)

		require.Error(t, err)
		assert.Equal(t, KindOperationDisabled, KindOf(err))
		assert.Empty(t, f.calls)
		assert.Equal(t, MsgCreationDisabled, rec.lastToast().Text)
	}
}

func TestEditScenario(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.BeginEdit(1))
	id, ok := b.EditingID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	require.Len(t, rec.opened, 1)
	assert.Equal(t, "Meeting", rec.opened[0].Title)

	f.calls = nil
	require.NoError(t, b.SubmitEdit(context.Background(), remote.Payload{Title: " New ", Description: "y "}))

	require.Len(t, f.calls, 2)
	assert.Equal(t, call{method: http.MethodPut, id: 1, payload: remote.Payload{Title: "New", Description: "y"}}, f.calls[0])
	assert.Equal(t, http.MethodGet, f.calls[1].method)
	assert.False(t, b.DialogOpen())
	assert.Equal(t, 1, rec.closed)

	var texts []string
	for _, tt := range rec.toasts {
		texts = append(texts, tt.Text)
	}
	assert.Contains(t, texts, MsgUpdated)
}

func TestEditFailureKeepsDialog(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))
	require.NoError(t, b.BeginEdit(12))

	f.updateErr = errors.Wrap(remote.ErrNetwork, "dial tcp")
	f.calls = nil
	err := b.SubmitEdit(context.Background(), remote.Payload{Title: "a", Description: "b"})

	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.True(t, b.DialogOpen())
	id, _ := b.EditingID()
	assert.Equal(t, int64(12), id)
	assert.Equal(t, []string{http.MethodPut}, f.methods())
	assert.Equal(t, MsgSaveFailed, rec.lastToast().Text)
	assert.Zero(t, rec.closed)
}

func TestLateUpdateKeepsOtherDialog(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.BeginEdit(1))
	req, err := b.PrepareSubmit(remote.Payload{Title: "New"})
	require.NoError(t, err)

	b.CloseDialog(TriggerEscape)
	require.NoError(t, b.BeginEdit(12))
	closed := rec.closed

	require.NoError(t, b.Updated(req.Do(context.Background())))

	id, ok := b.EditingID()
	require.True(t, ok)
	assert.Equal(t, int64(12), id)
	assert.Equal(t, closed, rec.closed)
	assert.Equal(t, MsgUpdated, rec.lastToast().Text)
}

func TestCloseDialog(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	b, rec := newTestBoard(t, f, nil)
	require.NoError(t, b.Load(context.Background()))

	for _, via := range []Trigger{TriggerCancel, TriggerBackdrop, TriggerEscape} {
		require.NoError(t, b.BeginEdit(1))
		b.CloseDialog(via)
		_, ok := b.EditingID()
		assert.False(t, ok)
	}
	assert.Empty(t, rec.toasts)

	require.NoError(t, b.BeginEdit(1))
	b.CloseDialog(TriggerClose)
	b.CloseDialog(TriggerClose)
	assert.False(t, b.DialogOpen())
	assert.Equal(t, MsgClosed, rec.lastToast().Text)

	err := b.SubmitEdit(context.Background(), remote.Payload{Title: "x"})
	assert.ErrorIs(t, err, ErrCreationDisabled)
}

func TestDeleteScenario(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := &fakeRemote{notices: sample()}
		var asked []string
		b, rec := newTestBoard(t, f, ConfirmFunc(func(p string) bool {
			asked = append(asked, p)
			return true
		}))
		require.NoError(t, b.Load(context.Background()))

		f.calls = nil
		f.notices = sample()[1:]
		require.NoError(t, b.Delete(context.Background(), 1))

		assert.Equal(t, []string{DeletePrompt}, asked)
		assert.Equal(t, []string{http.MethodDelete, http.MethodGet}, f.methods())
		assert.Equal(t, int64(1), f.calls[0].id)
		assert.Equal(t, sample()[1:], b.Notices())
		assert.Equal(t, []string{DeletePrompt}, rec.prompts)
		assert.Equal(t, 1, rec.resolved)
	})

	t.Run("declined", func(t *testing.T) {
		f := &fakeRemote{notices: sample()}
		b, _ := newTestBoard(t, f, ConfirmFunc(func(string) bool { return false }))
		require.NoError(t, b.Load(context.Background()))

		f.calls = nil
		require.NoError(t, b.Delete(context.Background(), 1))
		assert.Empty(t, f.calls)
		assert.Equal(t, sample(), b.Notices())
	})

	t.Run("rejected by server", func(t *testing.T) {
		f := &fakeRemote{notices: sample()}
		b, rec := newTestBoard(t, f, ConfirmFunc(func(string) bool { return true }))
		require.NoError(t, b.Load(context.Background()))

		f.calls = nil
		f.deleteErr = errors.WithStack(&remote.StatusError{Method: http.MethodDelete, Path: "/notices/1", StatusCode: 404})
		err := b.Delete(context.Background(), 1)

		require.Error(t, err)
		assert.Equal(t, []string{http.MethodDelete}, f.methods())
		assert.Equal(t, sample(), b.Notices())
		assert.Equal(t, MsgDeleteFailed, rec.lastToast().Text)
	})

	t.Run("nil confirmer declines", func(t *testing.T) {
		f := &fakeRemote{notices: sample()}
		b, _ := newTestBoard(t, f, nil)

		require.NoError(t, b.Delete(context.Background(), 1))
		assert.Empty(t, f.calls)
	})
}

func TestAnswerWithoutQuestion(t *testing.T) {
	b, rec := newTestBoard(t, &fakeRemote{}, nil)

	_, ok := b.Answer(true)
	assert.False(t, ok)
	assert.Zero(t, rec.resolved)

	b.AskDelete(7)
	id, pending := b.PendingDelete()
	require.True(t, pending)
	assert.Equal(t, int64(7), id)

	req, ok := b.Answer(true)
	require.True(t, ok)
	assert.Equal(t, int64(7), req.ID())
	_, pending = b.PendingDelete()
	assert.False(t, pending)
}

func TestUnsubscribe(t *testing.T) {
	f := &fakeRemote{notices: sample()}
	logger := zerolog.Nop()
	b := New(Deps{Remote: f, Logger: &logger})

	first, second := &recorder{}, &recorder{}
	unsubscribe := b.Subscribe(first)
	b.Subscribe(second)

	unsubscribe()
	require.NoError(t, b.Load(context.Background()))

	assert.Empty(t, first.rendered)
	assert.Len(t, second.rendered, 1)
}

func TestKindOf(t *testing.T) {
	cases := map[Kind]error{
		KindNone:              nil,
		KindNetwork:           errors.Wrap(remote.ErrNetwork, "GET /notices"),
		KindDecode:            errors.Wrap(remote.ErrDecode, "GET /notices"),
		KindTooLarge:          errors.Wrap(remote.ErrTooLarge, "GET /notices"),
		KindServer:            errors.WithStack(&remote.StatusError{StatusCode: 502}),
		KindNotFoundLocal:     notFound(3),
		KindOperationDisabled: errors.WithStack(ErrCreationDisabled),
		KindUnknown:           errors.New("boom"),
	}
	for want, err := range cases {
		assert.Equal(t, want, KindOf(err), want.String())
	}
}
