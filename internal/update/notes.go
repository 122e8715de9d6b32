package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/views"
)

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	notes := m.State.Notes()
	switch msg.String() {
	case "j", "down":
		if m.NoteCursor < len(notes)-1 {
			m.NoteCursor++
		}
	case "k", "up":
		if m.NoteCursor > 0 {
			m.NoteCursor--
		}
	case "n":
		m.Input = InputNote
		m.noteArea.SetValue("")
		m.noteArea.Focus()
		m.Status = StatusBar{Text: "type your note, enter to save", IsError: false}
	case "d":
		if len(notes) == 0 {
			return m
		}
		err := m.State.DeleteNote(context.Background(), m.NoteCursor)
		m.applyResult(err, "note deleted")
	}
	return m
}

func (m Model) renderNotesView() string {
	notes := m.State.Notes()
	items := make([]views.NoteItemData, 0, len(notes))
	for _, n := range notes {
		items = append(items, views.NoteItemData{
			Date: n.Date.Format("2006-01-02"),
			Text: n.Text,
		})
	}
	editor := ""
	if m.Input == InputNote {
		editor = fmt.Sprintf("%s\n%s", m.noteArea.View(), views.RenderMarkdown(m.noteArea.Value()))
	}
	return views.RenderNotesPanel(views.NotesPanelData{
		EditorView: editor,
		Capturing:  m.Input == InputNote,
		Items:      items,
		Cursor:     m.NoteCursor,
	})
}
