// Package board keeps the local copy of the notices collection in step with
// the server and tells registered listeners what to show.
//
// A Board is owned by a single event loop. Operations that talk to the server
// come in two halves: a request built on the loop that can be executed from
// any goroutine, and an apply step that must run back on the loop.
package board

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"noticeboard/internal/storage/remote"
)

// User-facing messages.
const (
	MsgLoadFailed       = "Failed to load notices"
	MsgNotFound         = "Notice not found"
	MsgCreationDisabled = "Creating new notices is disabled"
	MsgUpdated          = "Updated"
	MsgSaveFailed       = "Save failed"
	MsgDeleted          = "Deleted"
	MsgDeleteFailed     = "Delete failed"
	MsgClosed           = "Closed"

	DeletePrompt = "Delete this notice?"
)

// Remote is the notices collection endpoint.
type Remote interface {
	List(ctx context.Context) ([]remote.Notice, error)
	Update(ctx context.Context, id int64, p remote.Payload) error
	Delete(ctx context.Context, id int64) error
}

// Confirmer answers a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Deps are the collaborators a Board is built from.
type Deps struct {
	Remote Remote

	// Confirm answers the deletion prompt of Delete. A nil Confirm declines
	// every deletion.
	Confirm Confirmer

	// Logger defaults to the global logger.
	Logger *zerolog.Logger
}

// Trigger says how the dialog was dismissed.
type Trigger int

const (
	TriggerCancel Trigger = iota
	TriggerClose
	TriggerBackdrop
	TriggerEscape
	TriggerSaved
)

type Board struct {
	remote  Remote
	confirm Confirmer
	log     zerolog.Logger

	all     []remote.Notice
	visible []remote.Notice
	query   string

	editing    bool
	editingID  int64
	pending    bool
	pendingID  int64
	issuedSeq  uint64
	appliedSeq uint64

	subs      []subscription
	nextSubID int
}

func New(deps Deps) *Board {
	logger := log.Logger
	if deps.Logger != nil {
		logger = *deps.Logger
	}
	confirm := deps.Confirm
	if confirm == nil {
		confirm = ConfirmFunc(func(string) bool { return false })
	}

	return &Board{
		remote:  deps.Remote,
		confirm: confirm,
		log:     logger.With().Str("component", "board").Logger(),
		all:     []remote.Notice{},
		visible: []remote.Notice{},
	}
}

// ---------- state ----------

// Notices returns the cache: the list of the last successful load.
func (b *Board) Notices() []remote.Notice { return clone(b.all) }

// Visible returns what is currently rendered.
func (b *Board) Visible() []remote.Notice { return clone(b.visible) }

func (b *Board) Total() int { return len(b.visible) }
func (b *Board) Query() string { return b.query }

// EditingID reports the id of the active edit session, if any.
func (b *Board) EditingID() (int64, bool) { return b.editingID, b.editing }

func (b *Board) DialogOpen() bool { return b.editing }

// PendingDelete reports the id awaiting a yes/no answer, if any.
func (b *Board) PendingDelete() (int64, bool) { return b.pendingID, b.pending }

// Lookup finds id in the cache.
func (b *Board) Lookup(id int64) (remote.Notice, bool) {
	return lo.Find(b.all, func(n remote.Notice) bool { return n.ID == id })
}

// ---------- view ----------

// Render publishes list as the rendered cards. Every call is a full
// re-render.
func (b *Board) Render(list []remote.Notice) {
	out := clone(list)
	b.emit(func(l Listener) { l.NoticesRendered(out) })
}

func (b *Board) setTotal(n int) {
	b.emit(func(l Listener) { l.TotalChanged(n) })
}

// Filter narrows the rendered cards to notices whose title contains query,
// ignoring case, or whose id contains it. An empty query shows everything.
// Only the cache is consulted.
func (b *Board) Filter(query string) []remote.Notice {
	b.query = strings.ToLower(strings.TrimSpace(query))
	b.visible = match(b.all, b.query)

	b.Render(b.visible)
	b.setTotal(len(b.visible))
	return clone(b.visible)
}

func match(all []remote.Notice, q string) []remote.Notice {
	if q == "" {
		return clone(all)
	}
	return lo.Filter(all, func(n remote.Notice, _ int) bool {
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strconv.FormatInt(n.ID, 10), q)
	})
}

// ---------- dialog ----------

// BeginEdit opens the dialog on the cached notice id.
func (b *Board) BeginEdit(id int64) error {
	n, ok := b.Lookup(id)
	if !ok {
		b.log.Warn().Int64("notice.id", id).Msg("edit requested for unknown notice")
		b.toast(LevelError, MsgNotFound)
		return notFound(id)
	}

	b.editing = true
	b.editingID = id
	b.emit(func(l Listener) { l.DialogOpened(n) })
	return nil
}

// CloseDialog ends the edit session. It is safe to call when no dialog is
// open; listeners are told to reset the form either way.
func (b *Board) CloseDialog(via Trigger) {
	b.editing = false
	b.editingID = 0
	b.emit(func(l Listener) { l.DialogClosed() })

	if via == TriggerClose {
		b.toast(LevelInfo, MsgClosed)
	}
}

// ---------- confirmation ----------

// AskDelete asks listeners to confirm the deletion of id.
func (b *Board) AskDelete(id int64) {
	b.pending = true
	b.pendingID = id
	b.emit(func(l Listener) { l.ConfirmRequested(DeletePrompt) })
}

// Answer resolves the pending question. ok is false when nothing was pending
// or the answer was no.
func (b *Board) Answer(yes bool) (req DeleteRequest, ok bool) {
	if !b.pending {
		return DeleteRequest{}, false
	}
	id := b.pendingID
	b.pending = false
	b.pendingID = 0
	b.emit(func(l Listener) { l.ConfirmResolved() })

	if !yes {
		return DeleteRequest{}, false
	}
	return DeleteRequest{id: id, remote: b.remote}, true
}

func clone(list []remote.Notice) []remote.Notice {
	out := make([]remote.Notice, len(list))
	copy(out, list)
	return out
}
