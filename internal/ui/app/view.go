package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"noticeboard/internal/board"
)

const emptyPlaceholder = "No notices found"

var (
	border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	titleStyle  = lipgloss.NewStyle().Bold(true)
	blurStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2).
			Width(dialogWidth)

	toastStyles = map[board.Level]lipgloss.Style{
		board.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		board.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#25b067")).Bold(true),
		board.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	switch m.mode {
	case modeDialog:
		return m.overlay(m.renderDialog())
	case modeConfirm:
		return m.overlay(m.renderConfirm())
	}

	root := lipgloss.JoinHorizontal(lipgloss.Top, m.renderCards(), m.renderPreview())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.search.View(),
		root,
		m.renderToast(),
		m.renderHelp(),
	)
}

// ---------- rendering ----------

func (m Model) overlay(box string) string {
	content := lipgloss.JoinVertical(lipgloss.Center, box, "", m.renderToast())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// dialogBounds is where overlay puts the dialog box on screen.
func (m Model) dialogBounds() (x, y, w, h int) {
	content := lipgloss.JoinVertical(lipgloss.Center, m.renderDialog(), "", m.renderToast())
	cw, ch := lipgloss.Size(content)
	bw, bh := lipgloss.Size(m.renderDialog())

	x = max(0, (m.width-cw)/2) + (cw-bw)/2
	y = max(0, (m.height-ch)/2)
	return x, y, bw, bh
}

func (m Model) renderHeader() string {
	count := fmt.Sprintf("%d notices", m.total)
	if m.total == 1 {
		count = "1 notice"
	}
	return titleStyle.Render("noticeboard") + " " + blurStyle.Render("•") + " " + focusStyle.Render(count)
}

func (m Model) renderCards() string {
	box := border.Width(m.noticeList.Width()).Height(m.noticeList.Height()+1).Padding(0, 1)

	var body string
	switch {
	case !m.loaded && len(m.notices) == 0:
		body = blurStyle.Render("Loading notices...")
	case len(m.notices) == 0:
		body = blurStyle.Render(emptyPlaceholder)
	default:
		body = m.noticeList.View()
	}
	return box.Render(body)
}

func (m Model) renderPreview() string {
	header := titleStyle.Render("Notice")
	content := m.preview.View()
	if m.selected == nil {
		content = blurStyle.Render("Select a notice to see its description.")
	} else if strings.TrimSpace(m.selected.Description) == "" {
		content = blurStyle.Render("(no description)")
	}

	w := m.width - m.noticeList.Width() - 8
	if w < 20 {
		w = 20
	}

	box := border.Width(w).Height(m.noticeList.Height()+1).Padding(0, 1)
	return box.Render(header + "\n" + m.renderPreviewMeta() + "\n\n" + content)
}

func (m Model) renderPreviewMeta() string {
	id := "-"
	title := "-"
	if m.selected != nil {
		id = fmt.Sprintf("%d", m.selected.ID)
		title = noticeItem{n: *m.selected}.Title()
	}

	return strings.Join([]string{
		"---",
		"ID: " + id,
		"Title: " + title,
		"---",
	}, "\n")
}

func (m Model) renderDialog() string {
	titleLabel := labelStyle.Render("Title")
	descLabel := labelStyle.Render("Description")
	if m.field == fieldTitle {
		titleLabel = focusStyle.Render("Title")
	} else {
		descLabel = focusStyle.Render("Description")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Edit Notice #%d", m.dialogID)),
		"",
		titleLabel,
		m.titleInput.View(),
		"",
		descLabel,
		m.descInput.View(),
		"",
		m.help.View(dialogKeyMap{KeyMap: m.keys}),
	)
	return dialogStyle.Render(body)
}

func (m Model) renderConfirm() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.prompt),
		"",
		m.help.View(confirmKeyMap{KeyMap: m.keys}),
	)
	return dialogStyle.Width(40).Render(body)
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	return toastStyles[m.toast.Level].Render(m.toast.Text)
}

func (m Model) renderHelp() string {
	var view string
	switch m.mode {
	case modeSearch:
		view = m.help.View(searchKeyMap{KeyMap: m.keys})
	default:
		view = m.help.View(m.keys)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(view)
}
