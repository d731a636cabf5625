// Package tui implements the interactive sequence viewer: a bubbletea program
// that generates the sequence in the background, shows progress, and lets the
// user scroll the terms and change the term count.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sysmon"
)

// Layout constants.
const (
	headerHeight  = 1
	statusHeight  = 1
	footerHeight  = 1
	borderSize    = 2
	minBodyHeight = 3

	tickInterval = 500 * time.Millisecond
)

// errMismatch is reported when a comparison run produced different sequences.
var errMismatch = errors.New("generators produced different sequences")

// ExecutionState holds the state of the current generation.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generators []fibonacci.Generator
	n          int
	generation uint64
	running    bool
	progress   float64
	eta        time.Duration
	err        error
	exitCode   int
}

// Model is the root bubbletea model of the viewer.
type Model struct {
	header HeaderModel
	view   SequenceView
	stats  StatsModel
	help   help.Model
	keymap KeyMap

	ExecutionState

	width     int
	height    int
	parentCtx context.Context
	ref       *programRef
	memory    *metrics.MemoryCollector
	host      *sysmon.Sampler
}

// NewModel creates a viewer that generates n terms with generators. More
// than one generator runs a comparison.
func NewModel(parentCtx context.Context, generators []fibonacci.Generator, n int, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header: NewHeaderModel(version, generatorLabel(generators), n),
		stats:  NewStatsModel(),
		help:   help.New(),
		keymap: DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:        ctx,
			cancel:     cancel,
			generators: generators,
			n:          n,
			running:    true,
			exitCode:   apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		ref:       &programRef{},
		memory:    metrics.NewMemoryCollector(),
		host:      sysmon.NewSampler(),
	}
}

func generatorLabel(generators []fibonacci.Generator) string {
	names := make([]string, len(generators))
	for i, g := range generators {
		names[i] = g.Name()
	}
	return strings.Join(names, ", ")
}

// N returns the current term count.
func (m Model) N() int { return m.n }

// ExitCode returns the exit code of the last finished generation.
func (m Model) ExitCode() int { return m.exitCode }

// Init starts the first generation and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startGenerationCmd(m.ref, m.ctx, m.generators, m.n, m.generation),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.progress = msg.AverageProgress
			m.eta = msg.ETA
		}
		return m, nil

	case SequenceMsg:
		if msg.Generation != m.generation {
			return m, nil // stale result from a replaced generation
		}
		m.running = false
		m.progress = 1
		m.exitCode = msg.ExitCode
		m.err = msg.Result.Err
		m.header.SetDone()
		if m.err == nil {
			m.view.SetSequence(msg.Result.Sequence)
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(m.memory, m.host), tickCmd())

	case MemStatsMsg:
		m.stats.Update(msg)
		return m, nil

	case ContextCancelledMsg:
		m.cancel()
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.view.ScrollBy(-1)
	case key.Matches(msg, m.keymap.Down):
		m.view.ScrollBy(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.view.ScrollBy(-m.view.PageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.view.ScrollBy(m.view.PageSize())
	case key.Matches(msg, m.keymap.Top):
		m.view.ScrollToTop()
	case key.Matches(msg, m.keymap.Bottom):
		m.view.ScrollToBottom()

	case key.Matches(msg, m.keymap.Increase):
		return m.restart(m.n + 1)
	case key.Matches(msg, m.keymap.Decrease):
		if m.n > 0 {
			return m.restart(m.n - 1)
		}
	case key.Matches(msg, m.keymap.Reset):
		return m.restart(m.n)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return m, nil
}

// restart cancels the running generation and starts one for n terms.
func (m Model) restart(n int) (tea.Model, tea.Cmd) {
	m.cancel()
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)
	m.n = n
	m.running = true
	m.progress = 0
	m.eta = 0
	m.err = nil
	m.header.Reset(n)
	return m, startGenerationCmd(m.ref, m.ctx, m.generators, m.n, m.generation)
}

func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.stats.SetWidth(m.width)
	m.help.Width = m.width
	helpHeight := lipgloss.Height(m.help.View(m.keymap))
	body := max(minBodyHeight, m.height-headerHeight-statusHeight-helpHeight-borderSize)
	m.view.SetSize(m.width-borderSize, body)
}

// View renders the viewer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := panelStyle.
		Width(max(0, m.width-borderSize)).
		Height(m.view.PageSize()).
		Render(m.view.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.statusLine(),
		body,
		m.help.View(m.keymap),
	)
}

// statusLine describes the generation state, the visible range and the
// digit growth of the visible terms.
func (m Model) statusLine() string {
	var status string
	switch {
	case m.running:
		status = statusRunStyle.Render(format.FormatProgressBarWithETA(m.progress, m.eta, 20))
	case m.err != nil:
		status = statusErrorStyle.Render("Error: " + m.err.Error())
	default:
		status = statusDoneStyle.Render(fmt.Sprintf("%d terms", m.view.Sequence().Len()))
	}

	parts := []string{" " + status}
	if seq := m.view.Sequence(); !m.running && m.err == nil && seq.Len() > 0 {
		last := min(seq.Len(), m.view.Offset()+m.view.PageSize()) - 1
		parts = append(parts,
			dimStyle.Render(fmt.Sprintf("F(%d)..F(%d)", m.view.Offset(), last)),
			sparklineStyle.Render(RenderSparkline(Normalize(m.view.DigitProfile()))),
		)
	}
	parts = append(parts, m.stats.View())
	return strings.Join(parts, dimStyle.Render(" | "))
}

// Run starts the viewer and blocks until the user quits or ctx ends. It
// returns the exit code of the last finished generation.
func Run(ctx context.Context, generators []fibonacci.Generator, n int, version string) int {
	initTUIStyles()

	model := NewModel(ctx, generators, n, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startGenerationCmd runs the generators and reports a SequenceMsg.
func startGenerationCmd(ref *programRef, ctx context.Context, generators []fibonacci.Generator, n int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		results := orchestration.ExecuteAll(ctx, generators, n, reporter, io.Discard)
		if len(results) == 1 {
			return SequenceMsg{Generation: gen, N: n, Result: results[0], ExitCode: apperrors.ExitCodeFor(results[0].Err)}
		}

		best, code := orchestration.AnalyzeComparisonResults(results, TUIResultPresenter{}, io.Discard)
		msg := SequenceMsg{Generation: gen, N: n, ExitCode: code}
		switch {
		case best != nil:
			msg.Result = *best
		case code == apperrors.ExitErrorMismatch:
			msg.Result = orchestration.Result{Name: generatorLabel(generators), Err: errMismatch}
		case len(results) > 0:
			msg.Result = results[0]
		}
		return msg
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(mc *metrics.MemoryCollector, host *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{
			Snapshot:   mc.Snapshot(),
			Goroutines: runtime.NumGoroutine(),
			System:     host.Sample(),
		}
	}
}

// watchContextCmd reports the end of the session context.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
