// Package app is the top-level Bubble Tea model wiring the prompt line,
// the highlight pipeline, the dictionary and the reload watcher together.
package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/redline/internal/config"
	"github.com/zjrosen/redline/internal/highlight"
	"github.com/zjrosen/redline/internal/listener"
	"github.com/zjrosen/redline/internal/log"
	"github.com/zjrosen/redline/internal/mask"
	"github.com/zjrosen/redline/internal/pubsub"
	"github.com/zjrosen/redline/internal/spell"
	"github.com/zjrosen/redline/internal/ui/promptline"
	"github.com/zjrosen/redline/internal/watcher"
)

// reloadMsg signals that a dictionary file changed on disk.
type reloadMsg struct{}

// Model composes the demo prompt application.
type Model struct {
	cfg config.Config

	input       promptline.Model
	registry    *listener.Registry
	store       *mask.Store
	highlighter *highlight.Highlighter

	dict   *spell.Dictionary
	cached *spell.CachedChecker

	fsWatcher *watcher.Watcher
	reload    <-chan struct{}

	installs *pubsub.ContinuousListener[highlight.Installed]
	logTail  *log.LogListener
	ctx      context.Context
	cancel   context.CancelFunc

	history    []string
	status     string
	lastLog    string
	directives int
	width      int
}

// New builds the application from configuration. The dictionary, when
// configured, is initialized here so path errors surface before the
// terminal is taken over.
func New(cfg config.Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := mask.NewStore()
	registry := listener.New()

	classify := mask.Classify(spell.EvenLength)
	var suggest func(string) ([]string, error)
	var dict *spell.Dictionary
	var cached *spell.CachedChecker

	if cfg.HasDictionary() {
		dict = spell.NewDictionary()
		if err := dict.Init(cfg.Dictionary.AffixPath, cfg.Dictionary.WordlistPath); err != nil {
			return nil, fmt.Errorf("initializing dictionary: %w", err)
		}
		cached = spell.NewCachedChecker(dict, cfg.Dictionary.CacheTTL, spell.DefaultCleanupInterval)
		classify = spell.Misspelled(cached)
		suggest = cached.Suggest
	} else {
		log.Info(log.CatApp, "no dictionary configured, using parity placeholder")
	}

	input := promptline.New(promptline.Config{
		Placeholder:     "type a line, misspelled words light up",
		Store:           store,
		Registry:        registry,
		Suggest:         suggest,
		MisspelledColor: cfg.Theme.Misspelled,
	})
	input.Focus()

	h := highlight.New(input.ID(), store, classify)
	registry.Add(h.Listener())

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		cfg:         cfg,
		input:       input,
		registry:    registry,
		store:       store,
		highlighter: h,
		dict:        dict,
		cached:      cached,
		installs:    pubsub.NewContinuousListener(ctx, h.Events()),
		logTail:     log.NewListener(ctx),
		ctx:         ctx,
		cancel:      cancel,
		width:       80,
	}

	if cfg.HasDictionary() && cfg.Dictionary.AutoReload {
		fsw, err := watcher.New(watcher.Config{
			Paths:       []string{cfg.Dictionary.AffixPath, cfg.Dictionary.WordlistPath},
			DebounceDur: cfg.Dictionary.ReloadDebounce,
		})
		if err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("creating dictionary watcher: %w", err)
		}
		m.fsWatcher = fsw
		reload, err := fsw.Start()
		if err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("starting dictionary watcher: %w", err)
		}
		m.reload = reload
	}

	return m, nil
}

// Close releases the watcher and event subscriptions.
func (m *Model) Close() error {
	m.cancel()
	m.highlighter.Close()
	if m.fsWatcher != nil {
		return m.fsWatcher.Stop()
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForReload(), m.installs.Listen(), m.listenLogs())
}

// listenLogs arms the live log tail when debug logging is active.
func (m *Model) listenLogs() tea.Cmd {
	if m.logTail == nil {
		return nil
	}
	return m.logTail.Listen()
}

// waitForReload arms a command that resolves on the next watcher signal.
func (m *Model) waitForReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			return reloadMsg{}
		}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case promptline.SubmitMsg:
		if strings.TrimSpace(msg.Content) != "" {
			m.history = append(m.history, msg.Content)
		}
		m.input.Reset()
		return m, nil

	case reloadMsg:
		m.reloadDictionary()
		return m, m.waitForReload()

	case pubsub.Event[highlight.Installed]:
		m.directives = msg.Payload.Directives
		return m, m.installs.Listen()

	case log.LogEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		return m, m.listenLogs()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reloadDictionary re-initializes the dictionary after a file change,
// flushes stale cached verdicts and re-runs the listeners so highlights
// reflect the new word list. A failed reload keeps the old word list and
// the old mask.
func (m *Model) reloadDictionary() {
	if m.dict == nil {
		return
	}
	if err := m.dict.Init(m.cfg.Dictionary.AffixPath, m.cfg.Dictionary.WordlistPath); err != nil {
		log.ErrorErr(log.CatApp, "dictionary reload failed", err)
		m.status = "dictionary reload failed: " + err.Error()
		return
	}
	m.cached.Flush()
	if err := m.registry.Notify(m.input.Value()); err != nil {
		// The previous mask stays installed; highlights refresh on the
		// next successful recompute.
		log.Warn(log.CatApp, "recompute after reload failed", "error", err.Error())
	}
	m.status = fmt.Sprintf("dictionary reloaded (%d words)", m.dict.WordCount())
	log.Info(log.CatApp, "dictionary reloaded", "words", m.dict.WordCount())

	if msk, content, ok := m.store.Get(m.input.ID()); ok {
		m.highlighter.Events().Publish(pubsub.ReloadedEvent, highlight.Installed{
			ID:         m.input.ID(),
			Content:    content,
			Directives: msk.Len(),
		})
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Theme.Prompt))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Theme.Suggestion))

	var b strings.Builder
	for _, line := range m.history {
		b.WriteString(promptStyle.Render("❯"))
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render("❯"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if err := m.input.Err(); err != nil {
		b.WriteString(statusStyle.Render("! " + err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	help := "enter: submit · ctrl+c: quit"
	if m.directives > 0 {
		help = fmt.Sprintf("%s · %d highlight marks", help, m.directives)
	}
	b.WriteString(statusStyle.Render(help))

	if m.lastLog != "" {
		logStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		b.WriteString("\n")
		b.WriteString(logStyle.Render(runewidth.Truncate(m.lastLog, m.width, "…")))
	}
	return b.String()
}
