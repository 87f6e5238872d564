package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/modes"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// messageTicks is how long a mode effect message stays on screen.
const messageTicks = 120

// Model is the Bubble Tea model for one play session: a mode instance
// driving the engine through the fixed tick loop.
type Model struct {
	mode      modes.Mode
	engineCfg engine.Config
	state     engine.GameState
	events    []engine.Event // events from the last transition, fed to the mode

	pending   []engine.Command
	softPulse bool // soft drop pressed this tick, release it next tick

	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	seed       int64
	commandLog []storage.TimedCommand

	score   int
	lines   int
	status  string
	message string
	msgLeft int

	done        bool // mode win condition reached
	paused      bool
	resultSaved bool
	quitting    bool
	backToMenu  bool
	err         error
}

// NewModel creates a session model for the given mode.
func NewModel(mode modes.Mode, engineCfg engine.Config, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		mode:      mode,
		engineCfg: engineCfg,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		seed:      cfg.Seed,
	}
	if err := m.start(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// start builds a fresh engine state and lets the mode stage the scenario.
func (m *Model) start() error {
	rng := engine.NewSevenBag(engine.Seed(m.seed))
	st, err := engine.NewGameState(m.engineCfg, rng, 0)
	if err != nil {
		return err
	}

	r := m.mode.Init(m.engineCfg, st)
	if len(r.Ops) > 0 {
		st, err = engine.ApplyOps(st, r.Ops...)
		if err != nil {
			return err
		}
	}

	m.state = st
	m.events = nil
	m.pending = nil
	m.softPulse = false
	m.commandLog = nil
	m.score = r.Score
	m.lines = 0
	m.status = r.Status
	m.applyEffects(r.Effects)
	m.done = false
	m.paused = false
	m.resultSaved = false
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// terminal reports whether the session stopped advancing: the mode finished
// or the stack topped out.
func (m Model) terminal() bool {
	return m.done || m.state.TopOut
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		if !m.terminal() {
			m.paused = !m.paused
		}
		return m, nil
	case core.ActionRestart:
		if m.terminal() {
			// New seed, new run
			m.seed = time.Now().UnixNano()
			mode, err := registry.Create(m.mode.ID())
			if err == nil {
				m.mode = mode
			}
			if err := m.start(); err != nil {
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	case core.ActionBack:
		if m.terminal() || m.paused {
			m.backToMenu = true
		}
		return m, nil
	}

	if m.paused || m.terminal() {
		return m, nil
	}

	if cmd, ok := m.keyMapper.MapGameKey(msg); ok {
		m.pending = append(m.pending, cmd)
		if cmd == engine.CmdSoftDropOn {
			m.softPulse = true
		}
	}

	return m, nil
}

// handleTick runs one simulation tick: the mode observes and stages first,
// then the engine transition consumes the (possibly filtered) commands.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.terminal() {
		m.pending = nil
		return m, tickCmd(m.config.TickRate)
	}

	r := m.mode.Step(modes.StepInput{
		Commands: m.pending,
		State:    m.state,
		Events:   m.events,
	})

	if len(r.Ops) > 0 {
		staged, err := engine.ApplyOps(m.state, r.Ops...)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.state = staged
	}

	commands := m.pending
	if r.Filter != nil {
		kept := commands[:0]
		for _, c := range commands {
			if r.Filter(c) {
				kept = append(kept, c)
			}
		}
		commands = kept
	}

	// Log against the tick the transition lands on
	tick := uint64(m.state.Tick) + 1
	for _, c := range commands {
		m.commandLog = append(m.commandLog, storage.TimedCommand{Tick: tick, Cmd: c})
	}

	next, events, err := engine.Step(m.state, commands)
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.state = next
	m.events = events

	for _, e := range events {
		if cleared, ok := e.(engine.LinesClearedEvent); ok {
			m.lines += len(cleared.Rows)
		}
	}

	m.score = r.Score
	m.status = r.Status
	m.applyEffects(r.Effects)
	if m.msgLeft > 0 {
		m.msgLeft--
	}
	if r.Done {
		m.done = true
	}

	if m.terminal() && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	m.pending = nil
	if m.softPulse {
		// No key-release events in a terminal: disengage next tick
		m.pending = append(m.pending, engine.CmdSoftDropOff)
		m.softPulse = false
	}

	return m, tickCmd(m.config.TickRate)
}

// applyEffects surfaces the latest mode message.
func (m *Model) applyEffects(effects []modes.Effect) {
	for _, e := range effects {
		if e.Message != "" {
			m.message = e.Message
			m.msgLeft = messageTicks
		}
	}
}

// saveResult persists the finished session and its replay, best effort.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, session continues regardless
	m.store.SaveResult(m.mode.ID(), m.score, m.lines, int(m.state.Tick))
	//nolint:errcheck // Best-effort save
	m.store.SaveReplay(m.mode.ID(), m.seed, m.commandLog)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen)
}

// Err returns the error that aborted the session, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one session.
func Run(mode modes.Mode, engineCfg engine.Config, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(mode, engineCfg, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
