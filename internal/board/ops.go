package board

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"noticeboard/internal/storage/remote"
)

func notFound(id int64) error {
	return errors.Wrapf(ErrNotFound, "notice %d", id)
}

// ---------- load ----------

type LoadRequest struct {
	seq    uint64
	remote Remote
}

type LoadResult struct {
	seq     uint64
	Notices []remote.Notice
	Err     error
}

// NewLoad issues a load. Results of loads issued earlier than the newest
// applied one are discarded by Loaded.
func (b *Board) NewLoad() LoadRequest {
	b.issuedSeq++
	return LoadRequest{seq: b.issuedSeq, remote: b.remote}
}

// Do fetches the collection. It touches no Board state.
func (r LoadRequest) Do(ctx context.Context) LoadResult {
	notices, err := r.remote.List(ctx)
	return LoadResult{seq: r.seq, Notices: notices, Err: err}
}

// Loaded applies a load result. On success the cache is replaced, the full
// list is rendered and the query is cleared. On failure nothing changes.
func (b *Board) Loaded(res LoadResult) error {
	if res.seq <= b.appliedSeq {
		b.log.Debug().
			Uint64("load.seq", res.seq).
			Uint64("load.applied", b.appliedSeq).
			Msg("discarding stale load result")
		return nil
	}

	if res.Err != nil {
		b.log.Error().Err(res.Err).Str("kind", KindOf(res.Err).String()).Msg("load notices")
		b.toast(LevelError, MsgLoadFailed)
		return res.Err
	}

	b.appliedSeq = res.seq
	b.all = clone(res.Notices)
	b.query = ""
	b.visible = clone(b.all)

	b.Render(b.visible)
	b.setTotal(len(b.all))
	return nil
}

// Load fetches and applies in one call.
func (b *Board) Load(ctx context.Context) error {
	return b.Loaded(b.NewLoad().Do(ctx))
}

// ---------- update ----------

type UpdateRequest struct {
	ID      int64
	Payload remote.Payload
	remote  Remote
}

type UpdateResult struct {
	ID  int64
	Err error
}

// PrepareSubmit validates a dialog submission against the edit session.
// Without a session the submission is rejected and nothing is sent.
func (b *Board) PrepareSubmit(p remote.Payload) (UpdateRequest, error) {
	if !b.editing {
		b.log.Warn().Msg("submit without edit session")
		b.toast(LevelError, MsgCreationDisabled)
		return UpdateRequest{}, errors.WithStack(ErrCreationDisabled)
	}

	return UpdateRequest{
		ID: b.editingID,
		Payload: remote.Payload{
			Title:       strings.TrimSpace(p.Title),
			Description: strings.TrimSpace(p.Description),
		},
		remote: b.remote,
	}, nil
}

func (r UpdateRequest) Do(ctx context.Context) UpdateResult {
	return UpdateResult{ID: r.ID, Err: r.remote.Update(ctx, r.ID, r.Payload)}
}

// Updated applies an update result. A nil return means the caller should
// reload. The dialog is closed only if it is still editing res.ID; a result
// arriving after the user moved on to another notice leaves that dialog open.
func (b *Board) Updated(res UpdateResult) error {
	if res.Err != nil {
		b.log.Error().Err(res.Err).Int64("notice.id", res.ID).Str("kind", KindOf(res.Err).String()).Msg("update notice")
		b.toast(LevelError, MsgSaveFailed)
		return res.Err
	}

	b.toast(LevelSuccess, MsgUpdated)
	if b.editing && b.editingID == res.ID {
		b.CloseDialog(TriggerSaved)
	}
	return nil
}

// SubmitEdit sends the dialog contents for the active session and reloads.
func (b *Board) SubmitEdit(ctx context.Context, p remote.Payload) error {
	req, err := b.PrepareSubmit(p)
	if err != nil {
		return err
	}
	if err := b.Updated(req.Do(ctx)); err != nil {
		return err
	}
	return b.Load(ctx)
}

// ---------- delete ----------

type DeleteRequest struct {
	id     int64
	remote Remote
}

type DeleteResult struct {
	ID  int64
	Err error
}

func (r DeleteRequest) ID() int64 { return r.id }

func (r DeleteRequest) Do(ctx context.Context) DeleteResult {
	return DeleteResult{ID: r.id, Err: r.remote.Delete(ctx, r.id)}
}

// Deleted applies a delete result. A nil return means the caller should
// reload.
func (b *Board) Deleted(res DeleteResult) error {
	if res.Err != nil {
		b.log.Error().Err(res.Err).Int64("notice.id", res.ID).Str("kind", KindOf(res.Err).String()).Msg("delete notice")
		b.toast(LevelError, MsgDeleteFailed)
		return res.Err
	}

	b.toast(LevelSuccess, MsgDeleted)
	return nil
}

// Delete asks the Confirmer, deletes id and reloads. A declined prompt is not
// an error.
func (b *Board) Delete(ctx context.Context, id int64) error {
	b.AskDelete(id)
	req, ok := b.Answer(b.confirm.Confirm(DeletePrompt))
	if !ok {
		return nil
	}
	if err := b.Deleted(req.Do(ctx)); err != nil {
		return err
	}
	return b.Load(ctx)
}
