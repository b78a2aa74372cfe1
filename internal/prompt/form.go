// Package prompt collects run parameters interactively with Bubble Tea.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/tilegen/internal/mapgen"
)

// ErrCanceled is returned when the user leaves a prompt without answering.
var ErrCanceled = errors.New("prompt canceled")

type fieldKind int

const (
	choiceField fieldKind = iota
	numberField
	textField
)

type field struct {
	label   string
	kind    fieldKind
	choices []string
	choice  int
	value   string
}

const (
	fieldMapType = iota
	fieldDrawStyle
	fieldWidth
	fieldHeight
	fieldTileWidth
	fieldTileHeight
	fieldBiomeCount
	fieldLayerName
)

// FormModel asks for every map parameter on one screen.
type FormModel struct {
	fields    []field
	cursor    int
	err       error
	submitted bool
	canceled  bool
	width     int
}

// NewFormModel creates a form pre-filled with defaults.
func NewFormModel(defaults mapgen.Params) FormModel {
	mapTypes := make([]string, len(mapgen.MapTypes))
	for i, t := range mapgen.MapTypes {
		mapTypes[i] = string(t)
	}
	drawStyles := make([]string, len(mapgen.DrawStyles))
	for i, d := range mapgen.DrawStyles {
		drawStyles[i] = string(d)
	}

	return FormModel{
		fields: []field{
			fieldMapType:    {label: "Map type", kind: choiceField, choices: mapTypes, choice: indexOf(mapTypes, string(defaults.Type))},
			fieldDrawStyle:  {label: "Draw style", kind: choiceField, choices: drawStyles, choice: indexOf(drawStyles, string(defaults.DrawStyle))},
			fieldWidth:      {label: "Width", kind: numberField, value: itoa(defaults.Width)},
			fieldHeight:     {label: "Height", kind: numberField, value: itoa(defaults.Height)},
			fieldTileWidth:  {label: "Tile width", kind: numberField, value: itoa(defaults.TileWidth)},
			fieldTileHeight: {label: "Tile height", kind: numberField, value: itoa(defaults.TileHeight)},
			fieldBiomeCount: {label: "Biomes", kind: numberField, value: itoa(defaults.BiomeCount)},
			fieldLayerName:  {label: "Layer name", kind: textField, value: defaults.LayerName},
		},
	}
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func (m FormModel) Init() tea.Cmd {
	return nil
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m FormModel) handleKey(key string) (FormModel, tea.Cmd) {
	f := &m.fields[m.cursor]

	switch key {
	case "ctrl+c", "esc":
		m.canceled = true
		return m, tea.Quit

	case "up", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.fields)) % len(m.fields)
		return m, nil

	case "down", "tab":
		m.cursor = (m.cursor + 1) % len(m.fields)
		return m, nil

	case "enter":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
			return m, nil
		}
		if _, err := mapgen.NewMapSpec(m.Params()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.submitted = true
		return m, tea.Quit

	case "left", "right":
		if f.kind == choiceField {
			step := 1
			if key == "left" {
				step = -1
			}
			f.choice = (f.choice + step + len(f.choices)) % len(f.choices)
		}
		return m, nil

	case "backspace":
		if f.kind != choiceField && f.value != "" {
			f.value = f.value[:len(f.value)-1]
		}
		return m, nil

	case "space":
		key = " "
	}

	if len(key) != 1 {
		return m, nil
	}
	switch f.kind {
	case numberField:
		if key[0] >= '0' && key[0] <= '9' && len(f.value) < 9 {
			f.value += key
		}
	case textField:
		f.value += key
	}
	return m, nil
}

// Params returns the values as currently entered. Empty numbers read as 0.
func (m FormModel) Params() mapgen.Params {
	number := func(i int) int {
		n, _ := strconv.Atoi(m.fields[i].value)
		return n
	}
	choice := func(i int) string {
		f := m.fields[i]
		return f.choices[f.choice]
	}

	return mapgen.Params{
		Type:       mapgen.MapType(choice(fieldMapType)),
		DrawStyle:  mapgen.DrawStyle(choice(fieldDrawStyle)),
		Width:      number(fieldWidth),
		Height:     number(fieldHeight),
		TileWidth:  number(fieldTileWidth),
		TileHeight: number(fieldTileHeight),
		BiomeCount: number(fieldBiomeCount),
		LayerName:  strings.TrimSpace(m.fields[fieldLayerName].value),
	}
}

func (m FormModel) Submitted() bool { return m.submitted }
func (m FormModel) Canceled() bool  { return m.canceled }

func (m FormModel) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Tile map parameters") + "\n")

	var rows []string
	for i, f := range m.fields {
		value := f.value
		if f.kind == choiceField {
			value = "< " + f.choices[f.choice] + " >"
		}
		style := FieldStyle
		if i == m.cursor {
			style = FocusedFieldStyle
			if f.kind != choiceField {
				value += "_"
			}
		}
		rows = append(rows, LabelStyle.Render(f.label)+style.Render(value))
	}
	s.WriteString(BorderStyle.Render(strings.Join(rows, "\n")) + "\n")

	if m.err != nil {
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Invalid parameters: %v", m.err)) + "\n")
	}

	s.WriteString(HelpStyle.Render("↑/↓ move • ←/→ change choice • enter next/generate • esc cancel"))
	return s.String()
}

// RunForm shows the form and returns the submitted parameters.
func RunForm(defaults mapgen.Params) (mapgen.Params, error) {
	final, err := tea.NewProgram(NewFormModel(defaults), tea.WithAltScreen()).Run()
	if err != nil {
		return mapgen.Params{}, fmt.Errorf("failed to run parameter form: %w", err)
	}

	m, ok := final.(FormModel)
	if !ok || !m.Submitted() {
		return mapgen.Params{}, ErrCanceled
	}
	return m.Params(), nil
}
