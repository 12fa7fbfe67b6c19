package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"noticeboard/internal/board"
	"noticeboard/internal/editor"
	"noticeboard/internal/storage/remote"
)

type mode int
type dialogField int

const (
	modeBrowse mode = iota
	modeSearch
	modeDialog
	modeConfirm
)

const (
	fieldTitle dialogField = iota
	fieldDescription
)

const (
	dialogWidth      = 64
	descriptionLines = 8
	untitled         = "(untitled)"
)

type (
	loadedMsg       struct{ res board.LoadResult }
	updatedMsg      struct{ res board.UpdateResult }
	deletedMsg      struct{ res board.DeleteResult }
	toastExpiredMsg struct{ id ulid.ULID }
	editorDoneMsg   struct {
		session editor.Session
		err     error
	}
)

type noticeItem struct {
	n remote.Notice
}

func (i noticeItem) Title() string {
	if strings.TrimSpace(i.n.Title) == "" {
		return untitled
	}
	return i.n.Title
}

func (i noticeItem) Description() string {
	line, _, _ := strings.Cut(i.n.Description, "\n")
	return fmt.Sprintf("#%d · %s", i.n.ID, line)
}

func (i noticeItem) FilterValue() string { return i.n.Title }

type Model struct {
	board  *board.Board
	screen *screen

	width  int
	height int

	mode mode

	search textinput.Model

	titleInput textinput.Model
	descInput  textarea.Model
	field      dialogField
	dialogID   int64

	prompt string

	noticeList list.Model
	preview    viewport.Model
	notices    []remote.Notice
	selected   *remote.Notice
	total      int
	loaded     bool

	toast  *board.Toast
	expire func(board.Toast) tea.Cmd

	help     help.Model
	keys     KeyMap
	showHelp bool
}

// NewModel builds the notices screen on top of store. Nothing is fetched
// until Init.
func NewModel(store board.Remote) Model {
	sc := &screen{}
	b := board.New(board.Deps{Remote: store})
	b.Subscribe(sc)

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Notices"
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	search := textinput.New()
	search.Placeholder = "Search by title or id..."
	search.Prompt = "/ "

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 0

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.Prompt = ""
	desc.CharLimit = 0
	desc.SetHeight(descriptionLines)

	h := help.New()
	h.ShowAll = false

	return Model{
		board:      b,
		screen:     sc,
		mode:       modeBrowse,
		search:     search,
		titleInput: title,
		descInput:  desc,
		noticeList: l,
		preview:    viewport.New(0, 0),
		expire:     expireToast,
		help:       h,
		keys:       DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case loadedMsg:
		m.loaded = true
		if err := m.board.Loaded(msg.res); err == nil && m.board.Query() == "" {
			m.search.Reset()
		}
		cmd := m.drain()
		return m, cmd

	case updatedMsg:
		if err := m.board.Updated(msg.res); err != nil {
			cmd := m.drain()
			return m, cmd
		}
		cmd := tea.Batch(m.drain(), m.loadCmd())
		return m, cmd

	case deletedMsg:
		if err := m.board.Deleted(msg.res); err != nil {
			cmd := m.drain()
			return m, cmd
		}
		cmd := tea.Batch(m.drain(), m.loadCmd())
		return m, cmd

	case toastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil

	case editorDoneMsg:
		return m.onEditorDone(msg)

	case tea.MouseMsg:
		return m.onMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}

		switch m.mode {
		case modeSearch:
			return m.onSearchKey(msg)
		case modeDialog:
			return m.onDialogKey(msg)
		case modeConfirm:
			return m.onConfirmKey(msg)
		default:
			return m.onBrowseKey(msg)
		}
	}

	// cursor blink and friends
	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeDialog:
		if m.field == fieldTitle {
			m.titleInput, cmd = m.titleInput.Update(msg)
		} else {
			m.descInput, cmd = m.descInput.Update(msg)
		}
	}
	return m, cmd
}

// ---------- key handling ----------

func (m Model) onBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		if m.search.Value() == "" && m.board.Query() == "" {
			return m, nil
		}
		m.search.Reset()
		m.board.Filter("")
		cmd := m.drain()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Down):
		m.noticeList.CursorDown()
		m.syncSelection()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.noticeList.CursorUp()
		m.syncSelection()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.selected == nil {
			return m, nil
		}
		_ = m.board.BeginEdit(m.selected.ID)
		cmd := m.drain()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if m.selected == nil {
			return m, nil
		}
		m.board.AskDelete(m.selected.ID)
		cmd := m.drain()
		return m, cmd
	}

	var cmd tea.Cmd
	m.noticeList, cmd = m.noticeList.Update(msg)
	m.syncSelection()
	return m, cmd
}

func (m Model) onSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.board.Filter(m.search.Value())
	drained := m.drain()
	return m, tea.Batch(cmd, drained)
}

func (m Model) onDialogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.board.CloseDialog(board.TriggerEscape)
		cmd := m.drain()
		return m, cmd

	case key.Matches(msg, m.keys.Close):
		m.board.CloseDialog(board.TriggerClose)
		cmd := m.drain()
		return m, cmd

	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusField(1 - m.field)
		return m, cmd

	case key.Matches(msg, m.keys.Save):
		req, err := m.board.PrepareSubmit(remote.Payload{
			Title:       m.titleInput.Value(),
			Description: m.descInput.Value(),
		})
		if err != nil {
			cmd := m.drain()
			return m, cmd
		}
		cmd := m.drain()
		return m, tea.Batch(cmd, func() tea.Msg {
			return updatedMsg{res: req.Do(context.Background())}
		})

	case key.Matches(msg, m.keys.External):
		return m.openEditor()
	}

	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) onConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		req, ok := m.board.Answer(true)
		cmd := m.drain()
		if !ok {
			return m, cmd
		}
		return m, tea.Batch(cmd, func() tea.Msg {
			return deletedMsg{res: req.Do(context.Background())}
		})

	case key.Matches(msg, m.keys.No):
		m.board.Answer(false)
		cmd := m.drain()
		return m, cmd
	}
	return m, nil
}

// onMouse treats a click outside the dialog box as a dismissal.
func (m Model) onMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.mode != modeDialog {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	x0, y0, w, h := m.dialogBounds()
	if msg.X >= x0 && msg.X < x0+w && msg.Y >= y0 && msg.Y < y0+h {
		return m, nil
	}
	m.board.CloseDialog(board.TriggerBackdrop)
	cmd := m.drain()
	return m, cmd
}

func (m Model) openEditor() (Model, tea.Cmd) {
	session, err := editor.Start(m.descInput.Value())
	if err != nil {
		log.Error().Err(err).Msg("start external editor")
		cmd := m.setToast(board.NewToast(board.LevelError, "Editor failed"))
		return m, cmd
	}

	c, err := session.Cmd()
	if err != nil {
		_, _ = session.Finish()
		log.Error().Err(err).Msg("build editor command")
		cmd := m.setToast(board.NewToast(board.LevelError, "Editor failed"))
		return m, cmd
	}

	return m, tea.ExecProcess(c, func(err error) tea.Msg {
		return editorDoneMsg{session: session, err: err}
	})
}

func (m Model) onEditorDone(msg editorDoneMsg) (Model, tea.Cmd) {
	body, err := msg.session.Finish()
	if msg.err != nil {
		err = msg.err
	}
	if err != nil {
		log.Error().Err(err).Msg("external editor")
		cmd := m.setToast(board.NewToast(board.LevelError, "Editor failed"))
		return m, cmd
	}

	// the dialog may have been dismissed while the editor was open
	if m.mode != modeDialog {
		return m, nil
	}
	m.descInput.SetValue(body)
	cmd := m.focusField(fieldDescription)
	return m, cmd
}

// ---------- board sync ----------

func (m Model) loadCmd() tea.Cmd {
	req := m.board.NewLoad()
	return func() tea.Msg {
		return loadedMsg{res: req.Do(context.Background())}
	}
}

// drain applies the board updates queued since the last drain, in order.
func (m *Model) drain() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.screen.take() {
		switch ev := ev.(type) {
		case renderedEvent:
			m.setNotices(ev.notices)
		case totalEvent:
			m.total = ev.n
		case openedEvent:
			cmds = append(cmds, m.openDialog(ev.notice))
		case closedEvent:
			m.closeDialog()
		case confirmEvent:
			m.mode = modeConfirm
			m.prompt = ev.prompt
		case resolvedEvent:
			if m.mode == modeConfirm {
				m.mode = modeBrowse
			}
			m.prompt = ""
		case toastEvent:
			cmds = append(cmds, m.setToast(ev.toast))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) setToast(t board.Toast) tea.Cmd {
	m.toast = &t
	return m.expire(t)
}

func expireToast(t board.Toast) tea.Cmd {
	return tea.Tick(board.ToastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: t.ID}
	})
}

func (m *Model) setNotices(notices []remote.Notice) {
	m.notices = notices

	items := make([]list.Item, 0, len(notices))
	for _, n := range notices {
		items = append(items, noticeItem{n: n})
	}
	m.noticeList.SetItems(items)
	m.syncSelection()
}

func (m *Model) openDialog(n remote.Notice) tea.Cmd {
	if m.mode == modeSearch {
		m.search.Blur()
	}
	m.mode = modeDialog
	m.dialogID = n.ID
	m.titleInput.SetValue(n.Title)
	m.titleInput.CursorEnd()
	m.descInput.SetValue(n.Description)
	return m.focusField(fieldTitle)
}

func (m *Model) closeDialog() {
	if m.mode == modeDialog {
		m.mode = modeBrowse
	}
	m.dialogID = 0
	m.field = fieldTitle
	m.titleInput.Blur()
	m.titleInput.Reset()
	m.descInput.Blur()
	m.descInput.Reset()
}

func (m *Model) focusField(f dialogField) tea.Cmd {
	m.field = f
	if f == fieldTitle {
		m.descInput.Blur()
		return m.titleInput.Focus()
	}
	m.titleInput.Blur()
	return m.descInput.Focus()
}

// ---------- helpers ----------

func (m *Model) layout() {
	listW := max(32, min(56, m.width/2))
	contentH := max(10, m.height-6)

	rightW := max(20, m.width-listW-6)
	previewBodyH := max(3, contentH-6)

	m.noticeList.SetSize(listW-4, contentH-3)
	m.preview = viewport.New(rightW, previewBodyH)
	m.search.Width = listW - 4

	m.titleInput.Width = dialogWidth - 6
	m.descInput.SetWidth(dialogWidth - 6)
	m.help.Width = m.width

	m.syncSelection()
}

func (m *Model) syncSelection() {
	if len(m.notices) == 0 || len(m.noticeList.Items()) == 0 {
		m.selected = nil
		m.preview.SetContent("")
		return
	}

	idx := m.noticeList.Index()
	if idx < 0 || idx >= len(m.notices) {
		idx = 0
		m.noticeList.Select(idx)
	}

	n := m.notices[idx]
	m.selected = &n
	m.preview.SetContent(n.Description)
}
