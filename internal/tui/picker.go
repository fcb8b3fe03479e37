package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionApply
	ActionQuit
)

// Options are the policy settings chosen in the picker.
type Options struct {
	Mode          policy.Mode
	Block         policy.BlockMode
	MergeUnstable bool
}

// PickerResult holds the result of the picker
type PickerResult struct {
	Action    Action
	Selection region.Selection
	Options   Options
}

// PickerOptions configures the picker.
type PickerOptions struct {
	// Selected regions start checked.
	Selected region.Selection
	// Probes adds latency to each row when present.
	Probes map[string]latency.Result
	// Defaults seed the options step.
	Defaults Options
	// SkipOptions returns straight after region selection with Defaults.
	SkipOptions bool
}

// unstableGlyph marks regions known to drop matches.
const unstableGlyph = "⚠"

// regionItem implements list.Item for region display
type regionItem struct {
	region   region.Region
	selected bool
	probe    *latency.Result
}

func (i regionItem) Title() string {
	box := "[ ]"
	if i.selected {
		box = "[x]"
	}
	title := box + " " + i.region.ID
	if !i.region.Stable {
		title += " " + unstableGlyph
	}
	return title
}

func (i regionItem) Description() string {
	parts := []string{i.region.Code}
	if !i.region.Stable {
		parts = append(parts, "unstable")
	}
	if i.probe != nil {
		parts = append(parts, formatProbe(*i.probe))
	}
	return strings.Join(parts, " | ")
}

func (i regionItem) FilterValue() string {
	return i.region.ID + " " + i.region.Code
}

func formatProbe(r latency.Result) string {
	if !r.OK() {
		return "unreachable"
	}
	return fmt.Sprintf("%d ms", r.Millis())
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type pickerStep int

const (
	pickRegions pickerStep = iota
	pickOptions
)

// Model is the bubbletea model for the region picker
type Model struct {
	list        list.Model
	wizard      wizardModel
	step        pickerStep
	skipOptions bool
	defaults    Options
	notice      string
	result      PickerResult
	quitting    bool
	width       int
	height      int
}

// NewPicker creates a new region picker
func NewPicker(c *region.Catalog, opts PickerOptions) Model {
	items := buildGroupedItems(c, opts.Selected, opts.Probes)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = "Make Your Choice - Select Servers"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	skipHeaders(&l, 1)

	return Model{
		list:        l,
		skipOptions: opts.SkipOptions,
		defaults:    opts.Defaults,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(size.Width, size.Height-4)
		return m, nil
	}

	if m.step == pickOptions {
		outcome, cmd := m.wizard.Update(msg)
		switch outcome {
		case wizardBack:
			m.step = pickRegions
		case wizardCancel:
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		case wizardDone:
			m.result = PickerResult{
				Action:    ActionApply,
				Selection: m.wizard.selection,
				Options:   m.wizard.options(),
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}

	// Don't handle keys if filtering
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		m.notice = ""

		switch keyMsg.String() {
		case " ":
			return m, m.toggle()

		case "c":
			return m, m.clear()

		case "enter":
			sel := m.Selection()
			if len(sel) == 0 {
				m.notice = "Please select at least one server to allow."
				return m, nil
			}
			if m.skipOptions {
				m.result = PickerResult{Action: ActionApply, Selection: sel, Options: m.defaults}
				m.quitting = true
				return m, tea.Quit
			}
			m.wizard = newWizardModel(sel, m.defaults)
			m.step = pickOptions
			return m, nil

		case "q", "esc", "ctrl+c":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if keyMsg, ok := msg.(tea.KeyMsg); ok && isHeaderSelected(&m.list) {
		skipHeaders(&m.list, navigationDirection(keyMsg))
	}
	return m, cmd
}

// toggle flips the highlighted region.
func (m *Model) toggle() tea.Cmd {
	item, ok := m.list.SelectedItem().(regionItem)
	if !ok {
		return nil
	}
	item.selected = !item.selected
	return m.list.SetItem(m.list.Index(), item)
}

func (m *Model) clear() tea.Cmd {
	var cmds []tea.Cmd
	for i, it := range m.list.Items() {
		if item, ok := it.(regionItem); ok && item.selected {
			item.selected = false
			cmds = append(cmds, m.list.SetItem(i, item))
		}
	}
	return tea.Batch(cmds...)
}

// Selection returns the checked regions in list order.
func (m Model) Selection() region.Selection {
	var ids []string
	for _, it := range m.list.Items() {
		if item, ok := it.(regionItem); ok && item.selected {
			ids = append(ids, item.region.ID)
		}
	}
	return region.NewSelection(ids...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.step == pickOptions {
		return m.wizard.View()
	}

	help := helpStyle.Render("[space] Toggle  [enter] Continue  [c] Clear  [/] Filter  [q] Quit")
	view := m.list.View() + "\n"
	if m.notice != "" {
		view += noticeStyle.Render(m.notice) + "\n"
	}
	return view + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive region picker
func RunPicker(c *region.Catalog, opts PickerOptions) (PickerResult, error) {
	m := NewPicker(c, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive listing of the catalog by group, with
// latency when probes are given.
func SimplePicker(c *region.Catalog, selected region.Selection, probes map[string]latency.Result) string {
	var sb strings.Builder

	sb.WriteString("Make Your Choice - Servers\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n")

	for _, rs := range groupRegions(c) {
		sb.WriteString("\n" + region.GroupLabel(rs[0].Group()) + "\n")
		for _, r := range rs {
			mark := " "
			if selected.Contains(r.ID) {
				mark = "*"
			}
			name := r.ID
			if !r.Stable {
				name += " " + unstableGlyph
			}
			line := fmt.Sprintf("  %s %-32s %-16s", mark, name, r.Code)
			if res, ok := probes[r.ID]; ok {
				line += " " + formatProbe(res)
			}
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}

	return sb.String()
}
