package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/modelcompare/internal/metrics"
	"github.com/mwiater/modelcompare/internal/report"
)

type stubBuilder struct {
	calls []report.PageID
	fail  map[report.PageID]error
}

func (s *stubBuilder) Build(id report.PageID) (report.Page, error) {
	s.calls = append(s.calls, id)
	if err := s.fail[id]; err != nil {
		return report.Page{}, err
	}
	table, err := metrics.Parse(strings.NewReader(testSummaryCSV), string(id)+".csv", nil)
	if err != nil {
		return report.Page{}, err
	}
	if id == report.PageSummary {
		return report.BuildSummaryPage(table)
	}
	return report.BuildComparisonPage(table)
}

func loaded(t *testing.T, m *model, cmd tea.Cmd) *model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	msg, ok := cmd().(pageLoadedMsg)
	if !ok {
		t.Fatal("expected pageLoadedMsg")
	}
	next, _ := m.Update(msg)
	return next.(*model)
}

func TestInitLoadsFirstPage(t *testing.T) {
	builder := &stubBuilder{}
	m := initialModel(builder)
	m = loaded(t, m, m.Init())

	if len(builder.calls) != 1 || builder.calls[0] != report.PageComparison {
		t.Fatalf("expected comparison page to load first, got %v", builder.calls)
	}
	if m.loading || m.err != nil {
		t.Fatalf("unexpected state loading=%v err=%v", m.loading, m.err)
	}
	view := m.View()
	for _, want := range []string{"Model Comparison", "Highest Recall", "Balanced Random Forest"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestTabSwitchesPages(t *testing.T) {
	builder := &stubBuilder{}
	m := initialModel(builder)
	m = loaded(t, m, m.Init())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(*model)
	if m.currentID() != report.PageSummary || !m.loading {
		t.Fatalf("expected summary page loading, got %s loading=%v", m.currentID(), m.loading)
	}
	m = loaded(t, m, cmd)
	if !strings.Contains(m.viewport.View(), "Lowest Threshold") {
		t.Fatalf("expected summary tiles in viewport, got:\n%s", m.viewport.View())
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(*model)
	if m.currentID() != report.PageComparison {
		t.Fatalf("expected wrap to comparison, got %s", m.currentID())
	}
	m = loaded(t, m, cmd)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if next.(*model).currentID() != report.PageSummary {
		t.Fatal("expected shift+tab to wrap backwards")
	}
}

func TestStaleLoadIgnored(t *testing.T) {
	m := initialModel(&stubBuilder{})
	next, _ := m.Update(pageLoadedMsg{id: report.PageSummary, err: errors.New("late")})
	m = next.(*model)
	if !m.loading || m.err != nil {
		t.Fatal("result for a page that is no longer shown must be ignored")
	}
}

func TestLoadErrorShown(t *testing.T) {
	builder := &stubBuilder{fail: map[report.PageID]error{
		report.PageComparison: &metrics.EmptyDatasetError{Path: "model_comparison_results.csv"},
	}}
	m := initialModel(builder)
	m = loaded(t, m, m.Init())
	if !strings.Contains(m.viewport.View(), "could not be generated") {
		t.Fatalf("expected failure notice, got:\n%s", m.viewport.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	loaded(t, m, cmd)
	if len(builder.calls) != 2 {
		t.Fatalf("expected reload to rebuild, got %v", builder.calls)
	}
}

func TestQuitAndResize(t *testing.T) {
	m := initialModel(&stubBuilder{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(*model)
	if m.width != 120 || m.viewport.Height != 36 {
		t.Fatalf("unexpected size %d/%d", m.width, m.viewport.Height)
	}
}

func TestOlderLoadForSamePageIgnored(t *testing.T) {
	builder := &stubBuilder{}
	m := initialModel(builder)
	m = loaded(t, m, m.Init())

	_, first := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	older := first().(pageLoadedMsg)
	older.err = errors.New("outdated")
	newer := second().(pageLoadedMsg)

	next, _ := m.Update(newer)
	m = next.(*model)
	next, _ = m.Update(older)
	m = next.(*model)
	if m.err != nil || m.loading {
		t.Fatalf("older reload must not replace the newer result: loading=%v err=%v", m.loading, m.err)
	}

	next, away := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(*model)
	next, back := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(*model)
	stale := away().(pageLoadedMsg)
	next, _ = m.Update(pageLoadedMsg{id: report.PageComparison, seq: stale.seq, err: errors.New("outdated")})
	m = next.(*model)
	if !m.loading || m.err != nil {
		t.Fatal("load issued before switching back must be ignored")
	}
	m = loaded(t, m, back)
	if m.loading || m.err != nil {
		t.Fatalf("latest load should apply: loading=%v err=%v", m.loading, m.err)
	}
}
