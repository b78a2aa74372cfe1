package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ConfirmModel asks a yes/no question and keeps asking until it gets one.
type ConfirmModel struct {
	question string
	answer   bool
	answered bool
	invalid  string
}

func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m ConfirmModel) handleKey(key string) (ConfirmModel, tea.Cmd) {
	switch strings.ToLower(key) {
	case "y":
		m.answer, m.answered = true, true
		return m, tea.Quit
	case "n", "esc", "ctrl+c":
		m.answer, m.answered = false, true
		return m, tea.Quit
	}
	m.invalid = key
	return m, nil
}

// Answer reports the user's choice and whether one was made.
func (m ConfirmModel) Answer() (yes, answered bool) {
	return m.answer, m.answered
}

func (m ConfirmModel) View() string {
	s := m.question + " [y/n] "
	if m.invalid != "" {
		s += "\n" + ErrorStyle.Render(fmt.Sprintf("%q is not an option, answer y or n", m.invalid))
	}
	return s + "\n"
}

// Confirm asks question on the terminal and returns the answer.
func Confirm(question string) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(question)).Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation: %w", err)
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, ErrCanceled
	}
	yes, _ := m.Answer()
	return yes, nil
}
