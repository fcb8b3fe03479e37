package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

func TestNewWizardModel_Defaults(t *testing.T) {
	w := newWizardModel(region.NewSelection("A"), Options{
		Mode:          policy.ModeUniversalRedirect,
		Block:         policy.BlockService,
		MergeUnstable: true,
	})

	got := w.options()
	if got.Mode != policy.ModeUniversalRedirect || got.Block != policy.BlockService || !got.MergeUnstable {
		t.Errorf("options() = %+v, want defaults carried over", got)
	}
}

func TestWizard_CycleOptions(t *testing.T) {
	w := newWizardModel(region.NewSelection("A"), Options{})

	w.Update(keySpace)
	if w.options().Mode != policy.ModeUniversalRedirect {
		t.Errorf("Mode = %q after space, want universal-redirect", w.options().Mode)
	}

	w.Update(keyDown)
	w.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if w.options().Block != policy.BlockService {
		t.Errorf("Block = %v after left, want service (wraps around)", w.options().Block)
	}

	w.Update(keyDown)
	w.Update(keySpace)
	if !w.options().MergeUnstable {
		t.Error("MergeUnstable should toggle on")
	}

	w.Update(keyDown)
	if w.cursor != optMode {
		t.Errorf("cursor = %v, want wrap to first field", w.cursor)
	}
}

func TestWizard_ConfirmRedirectNeedsOneRegion(t *testing.T) {
	w := newWizardModel(region.NewSelection("A", "B"), Options{Mode: policy.ModeUniversalRedirect})

	if out, _ := w.Update(keyEnter); out != wizardPending || w.step != stepConfirm {
		t.Fatalf("enter on options: outcome %v step %v", out, w.step)
	}

	out, _ := w.Update(keyEnter)
	if out != wizardPending {
		t.Errorf("outcome = %v, want pending for an invalid selection", out)
	}
	if !strings.Contains(w.View(), "exactly one region") {
		t.Error("View should explain the redirect cardinality rule")
	}

	if out, _ := w.Update(runeKey('n')); out != wizardPending || w.step != stepOptions || w.err != "" {
		t.Errorf("n should return to options and clear the error")
	}
}

func TestWizard_ConfirmDone(t *testing.T) {
	w := newWizardModel(region.NewSelection("A"), Options{Mode: policy.ModeUniversalRedirect})

	w.Update(keyEnter)
	if out, _ := w.Update(runeKey('y')); out != wizardDone {
		t.Errorf("outcome = %v, want done", out)
	}
}

func TestWizard_Back(t *testing.T) {
	w := newWizardModel(region.NewSelection("A"), Options{})

	w.Update(keyEnter)
	if out, _ := w.Update(keyEsc); out != wizardPending || w.step != stepOptions {
		t.Errorf("esc on confirm: outcome %v step %v, want options", out, w.step)
	}
	if out, _ := w.Update(keyEsc); out != wizardBack {
		t.Errorf("esc on options: outcome %v, want back", out)
	}
	if out, _ := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); out != wizardCancel {
		t.Errorf("ctrl+c: outcome %v, want cancel", out)
	}
}

func TestWizard_View(t *testing.T) {
	w := newWizardModel(region.NewSelection("Europe (London)"), Options{MergeUnstable: true})

	view := w.View()
	for _, want := range []string{"Options:", "Gatekeep", "[x] Merge unstable"} {
		if !strings.Contains(view, want) {
			t.Errorf("options view should contain %q", want)
		}
	}

	w.Update(keyEnter)
	view = w.View()
	for _, want := range []string{"Confirm:", "Europe (London)", "Merge"} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm view should contain %q", want)
		}
	}
}
