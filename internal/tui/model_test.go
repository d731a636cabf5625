package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sysmon"
)

func newTestModel(t *testing.T, n int) Model {
	t.Helper()
	m := NewModel(context.Background(), []fibonacci.Generator{fibonacci.BigGenerator{}}, n, "v1.0.0")
	t.Cleanup(m.cancel)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func TestModel_GenerationLifecycle(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 10)
	if !m.running {
		t.Fatal("model should start running")
	}
	if v := m.View(); !strings.Contains(v, "fibseq viewer v1.0.0") {
		t.Errorf("header missing from view:\n%s", v)
	}

	m = deliver(t, m, startGenerationCmd(m.ref, m.ctx, m.generators, m.n, m.generation))
	if m.running || m.err != nil {
		t.Fatalf("generation should complete: running=%v err=%v", m.running, m.err)
	}
	if got := m.view.Sequence().Len(); got != 10 {
		t.Errorf("sequence length = %d, want 10", got)
	}
	view := m.View()
	for _, want := range []string{"10 terms", "F(9) = 34", "F(0)..F(9)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}

func TestModel_IncreaseDecrease(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 2)

	updated, cmd := m.Update(runeKey("+"))
	m = updated.(Model)
	if m.N() != 3 || m.generation != 1 || !m.running {
		t.Fatalf("+ should restart with 3 terms: n=%d generation=%d", m.N(), m.generation)
	}
	m = deliver(t, m, cmd)
	if m.view.Sequence().Len() != 3 {
		t.Errorf("len = %d, want 3", m.view.Sequence().Len())
	}

	for range 3 {
		updated, _ = m.Update(runeKey("-"))
		m = updated.(Model)
	}
	if m.N() != 0 {
		t.Errorf("n = %d, want 0", m.N())
	}
	if _, cmd := m.Update(runeKey("-")); cmd != nil {
		t.Error("decrease below zero should be ignored")
	}
}

func TestModel_StaleResultIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 5)
	updated, _ := m.Update(runeKey("r"))
	m = updated.(Model)

	stale := SequenceMsg{Generation: 0, Result: orchestration.Result{Sequence: fibonacci.Generate(99)}}
	updated, _ = m.Update(stale)
	m = updated.(Model)
	if !m.running || m.view.Sequence() != nil {
		t.Error("stale SequenceMsg should be ignored")
	}

	updated, _ = m.Update(ProgressMsg{Generation: 0, AverageProgress: 0.9})
	if updated.(Model).progress != 0 {
		t.Error("stale ProgressMsg should be ignored")
	}
	updated, _ = m.Update(ProgressMsg{Generation: 1, AverageProgress: 0.4})
	if updated.(Model).progress != 0.4 {
		t.Error("current ProgressMsg should be applied")
	}
}

func TestModel_ErrorResult(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 5)
	updated, _ := m.Update(SequenceMsg{
		Generation: m.generation,
		Result:     orchestration.Result{Err: errors.New("boom")},
		ExitCode:   apperrors.ExitErrorGeneric,
	})
	m = updated.(Model)
	if m.ExitCode() != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d", m.ExitCode())
	}
	if !strings.Contains(m.View(), "Error: boom") {
		t.Errorf("view should show the error:\n%s", m.View())
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 5)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel the running generation")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 5)
	updated, cmd := m.Update(ContextCancelledMsg{Err: context.DeadlineExceeded})
	if updated.(Model).ExitCode() != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", updated.(Model).ExitCode(), apperrors.ExitErrorTimeout)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("context end should quit")
	}
}

func TestModel_ScrollAndHelp(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 100)
	m = deliver(t, m, startGenerationCmd(m.ref, m.ctx, m.generators, m.n, m.generation))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if m.view.Offset() != 1 {
		t.Errorf("offset after down = %d", m.view.Offset())
	}
	updated, _ = m.Update(runeKey("G"))
	m = updated.(Model)
	if m.view.Offset() != 100-m.view.PageSize() {
		t.Errorf("offset after G = %d", m.view.Offset())
	}

	before := m.view.PageSize()
	updated, _ = m.Update(runeKey("?"))
	m = updated.(Model)
	if !m.help.ShowAll || m.view.PageSize() >= before {
		t.Errorf("full help should take rows from the body: %d -> %d", before, m.view.PageSize())
	}
}

func TestModel_MemStats(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 5)
	updated, _ := m.Update(MemStatsMsg{
		Snapshot:   metrics.MemorySnapshot{HeapAlloc: 2048, NumGC: 3},
		Goroutines: 4,
		System:     sysmon.Stats{CPUPercent: 25, MemPercent: 50, Valid: true},
	})
	view := updated.(Model).View()
	for _, want := range []string{"2.0 KiB", "Goroutines 4", "CPU 25%", "Mem 50%"} {
		if !strings.Contains(view, want) {
			t.Errorf("stats line should contain %q:\n%s", want, view)
		}
	}

	msg := sampleMemStatsCmd(metrics.NewMemoryCollector(), sysmon.NewSampler())()
	if stats, ok := msg.(MemStatsMsg); !ok || stats.Snapshot.Sys == 0 || stats.Goroutines == 0 {
		t.Errorf("unexpected sample %+v", msg)
	}
}

func TestModel_InitializingView(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), []fibonacci.Generator{fibonacci.BigGenerator{}}, 1, "dev")
	defer m.cancel()
	if m.View() != "Initializing..." {
		t.Errorf("View before sizing = %q", m.View())
	}
	if m.Init() == nil {
		t.Error("Init should return commands")
	}
}

type fixedGenerator struct {
	name string
	seq  fibonacci.Sequence
}

func (g fixedGenerator) Name() string { return g.name }

func (g fixedGenerator) Generate(context.Context, int, fibonacci.ProgressCallback) (fibonacci.Sequence, error) {
	return g.seq, nil
}

func TestStartGenerationCmd_Comparison(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	agree := []fibonacci.Generator{
		fixedGenerator{"a", fibonacci.Generate(4)},
		fixedGenerator{"b", fibonacci.Generate(4)},
	}
	msg := startGenerationCmd(ref, context.Background(), agree, 4, 7)().(SequenceMsg)
	if msg.Generation != 7 || msg.ExitCode != apperrors.ExitSuccess || msg.Result.Sequence.Len() != 4 {
		t.Errorf("unexpected comparison result %+v", msg)
	}

	disagree := []fibonacci.Generator{
		fixedGenerator{"a", fibonacci.Generate(4)},
		fixedGenerator{"b", fibonacci.Generate(3)},
	}
	msg = startGenerationCmd(ref, context.Background(), disagree, 4, 8)().(SequenceMsg)
	if msg.ExitCode != apperrors.ExitErrorMismatch || !errors.Is(msg.Result.Err, errMismatch) {
		t.Errorf("mismatch should be reported, got %+v", msg)
	}
}
