package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

// wizardStep identifies the current step.
type wizardStep int

const (
	stepOptions wizardStep = iota
	stepConfirm
)

// optionField identifies a field in the options step.
type optionField int

const (
	optMode optionField = iota
	optBlock
	optMerge
	optFieldCount
)

// wizardOutcome tells the picker what the wizard wants next.
type wizardOutcome int

const (
	wizardPending wizardOutcome = iota
	wizardBack
	wizardCancel
	wizardDone
)

var (
	modeCycle  = []policy.Mode{policy.ModeGatekeep, policy.ModeUniversalRedirect}
	blockCycle = []policy.BlockMode{policy.BlockBoth, policy.BlockPing, policy.BlockService}
)

// wizardModel collects policy options for a selection and confirms them.
type wizardModel struct {
	step      wizardStep
	selection region.Selection

	cursor optionField
	mode   int
	block  int
	merge  bool

	err string
}

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func newWizardModel(sel region.Selection, defaults Options) wizardModel {
	w := wizardModel{
		step:      stepOptions,
		selection: sel,
		merge:     defaults.MergeUnstable,
	}
	for i, m := range modeCycle {
		if m == defaults.Mode {
			w.mode = i
		}
	}
	for i, b := range blockCycle {
		if b == defaults.Block {
			w.block = i
		}
	}
	return w
}

func (w *wizardModel) options() Options {
	return Options{
		Mode:          modeCycle[w.mode],
		Block:         blockCycle[w.block],
		MergeUnstable: w.merge,
	}
}

// Update processes a message and reports what the picker should do next.
func (w *wizardModel) Update(msg tea.Msg) (wizardOutcome, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return wizardPending, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC:
		return wizardCancel, nil
	case tea.KeyEsc:
		return w.handleBack(), nil
	}

	switch w.step {
	case stepOptions:
		return w.updateOptions(keyMsg), nil
	case stepConfirm:
		return w.updateConfirm(keyMsg), nil
	}
	return wizardPending, nil
}

func (w *wizardModel) handleBack() wizardOutcome {
	w.err = ""
	if w.step == stepConfirm {
		w.step = stepOptions
		return wizardPending
	}
	// Esc at first step returns to region selection
	return wizardBack
}

func (w *wizardModel) updateOptions(msg tea.KeyMsg) wizardOutcome {
	switch msg.String() {
	case "enter":
		w.step = stepConfirm
	case "j", "down", "tab":
		w.cursor = (w.cursor + 1) % optFieldCount
	case "k", "up", "shift+tab":
		w.cursor = (w.cursor - 1 + optFieldCount) % optFieldCount
	case " ", "right", "l":
		w.cycle(1)
	case "left", "h":
		w.cycle(-1)
	}
	return wizardPending
}

func (w *wizardModel) cycle(delta int) {
	switch w.cursor {
	case optMode:
		w.mode = (w.mode + delta + len(modeCycle)) % len(modeCycle)
	case optBlock:
		w.block = (w.block + delta + len(blockCycle)) % len(blockCycle)
	case optMerge:
		w.merge = !w.merge
	}
}

// validate mirrors the checks the policy engine makes before writing.
func (w *wizardModel) validate() string {
	if w.options().Mode == policy.ModeUniversalRedirect && len(w.selection) != 1 {
		return fmt.Sprintf("Universal Redirect needs exactly one region, %d selected. Go back with Esc.", len(w.selection))
	}
	return ""
}

func (w *wizardModel) updateConfirm(msg tea.KeyMsg) wizardOutcome {
	switch msg.String() {
	case "enter", "y":
		if w.err = w.validate(); w.err != "" {
			return wizardPending
		}
		return wizardDone
	case "n":
		w.step = stepOptions
		w.err = ""
	}
	return wizardPending
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Apply Server Selection"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	opts := w.options()
	switch w.step {
	case stepOptions:
		b.WriteString(wizardLabelStyle.Render("Options:"))
		b.WriteString("\n\n")
		b.WriteString(w.renderChoice(optMode, "Method", modeLabel(opts.Mode), "How the hosts file steers traffic"))
		b.WriteString("\n")
		b.WriteString(w.renderChoice(optBlock, "Block", opts.Block.String(), "Which endpoints Gatekeep writes entries for"))
		b.WriteString("\n")
		b.WriteString(w.renderToggle(optMerge, "Merge unstable servers (recommended)", "Also allow a stable server from the same group"))
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Space/arrows to change, Enter to continue, Esc to go back."))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Regions: %s\n", wizardValueStyle.Render(strings.Join(w.selection, ", "))))
		b.WriteString(fmt.Sprintf("  Method:  %s\n", wizardValueStyle.Render(modeLabel(opts.Mode))))
		if opts.Mode == policy.ModeGatekeep {
			b.WriteString(fmt.Sprintf("  Block:   %s\n", wizardValueStyle.Render(opts.Block.String())))
			if opts.MergeUnstable {
				b.WriteString(fmt.Sprintf("  Merge:   %s\n", wizardValueStyle.Render("yes")))
			}
		}
		b.WriteString("\n")
		if w.err != "" {
			b.WriteString(wizardErrStyle.Render(w.err))
			b.WriteString("\n")
		}
		b.WriteString(wizardDimStyle.Render("Enter to apply, n to change options, Esc to go back."))
	}

	return b.String()
}

func modeLabel(m policy.Mode) string {
	if m == policy.ModeUniversalRedirect {
		return "Universal Redirect"
	}
	return "Gatekeep"
}

func (w *wizardModel) progressBar() string {
	steps := []string{"Regions", "Options", "Confirm"}
	current := int(w.step) + 1

	var parts []string
	for i, name := range steps {
		label := fmt.Sprintf("%d. %s", i+1, name)
		if i == current {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizardModel) renderChoice(field optionField, name, value, desc string) string {
	cursor := " "
	if w.cursor == field {
		cursor = ">"
	}

	line := fmt.Sprintf("  %s %s: < %s >", cursor, name, value)
	if w.cursor == field {
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}
	return line + "\n" + wizardDimStyle.Render("      "+desc)
}

func (w *wizardModel) renderToggle(field optionField, name, desc string) string {
	cursor := " "
	if w.cursor == field {
		cursor = ">"
	}

	checked := " "
	if w.merge {
		checked = "x"
	}

	line := fmt.Sprintf("  %s [%s] %s", cursor, checked, name)
	if w.cursor == field {
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}
	return line + "\n" + wizardDimStyle.Render("      "+desc)
}
