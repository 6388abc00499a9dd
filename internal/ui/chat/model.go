// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/config"
	"github.com/jeranaias/polichat/internal/session"
	"github.com/jeranaias/polichat/internal/ui/components"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// Focus identifies which panel receives key presses.
type Focus int

const (
	FocusInput   Focus = iota // Text input has focus
	FocusHistory              // History panel has focus
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Configuration
	cfg config.Config

	// Backend access
	client *api.Client

	// Session state
	orch *session.Orchestrator

	// Dimensions
	width  int
	height int
	ready  bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	history  *components.HistoryPanel
	list     *components.MessageList

	// Key bindings
	keyMap KeyMap

	// Focus state
	focus Focus

	// Typewriter reveal for the newest assistant reply
	typewriter typewriter

	// Transient status line, cleared on the next key press
	statusMsg string
}

// New creates the chat model.
func New(cfg config.Config, client *api.Client, theme *styles.Theme) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about a policy, or /search <query>..."
	ti.CharLimit = 2048
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	return Model{
		theme:      theme,
		cfg:        cfg,
		client:     client,
		orch:       session.New(),
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		history:    components.NewHistoryPanel(theme),
		list:       components.NewMessageList(theme),
		keyMap:     DefaultKeyMap(),
		focus:      FocusInput,
		typewriter: newTypewriter(cfg.TypewriterInterval()),
	}
}

// Orchestrator exposes the session state, mainly for tests.
func (m *Model) Orchestrator() *session.Orchestrator {
	return m.orch
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and fetches the saved-session list.
func (m Model) Init() tea.Cmd {
	m.history.Loading = true
	return tea.Batch(textinput.Blink, loadChatsCmd(m.client))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case session.AnswerMsg:
		m.orch.HandleAnswer(msg)
		return m.revealLatest()

	case session.TermsMsg:
		m.orch.HandleTerms(msg)
		return m.revealLatest()

	case session.SearchMsg:
		m.orch.HandleSearch(msg)
		return m.revealLatest()

	case session.SessionLoadedMsg:
		m.orch.HandleSessionLoaded(msg)
		m.history.ActiveID = m.orch.ActiveID()
		// Loaded transcripts render in full; the reveal is for new replies.
		m.typewriter.Stop()
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case session.SessionSavedMsg:
		if msg.Err == nil {
			return m, loadChatsCmd(m.client)
		}
		return m, nil

	case ChatsLoadedMsg:
		if msg.Err == nil {
			m.history.SetItems(msg.Chats)
		} else {
			m.history.Loading = false
		}
		return m, nil

	case TypewriterTickMsg:
		cmd := m.typewriter.Advance(msg)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, cmd

	case spinner.TickMsg:
		if m.orch.InFlight() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		var cmds []tea.Cmd
		if m.focus == FocusInput {
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			cmds = append(cmds, inputCmd)
		}
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
		return m, tea.Batch(cmds...)
	}
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.theme.SetSize(m.width, m.height)

	// Layout: header (1) + transcript row + input area (3) + status bar (1).
	const reservedHeight = 5

	contentHeight := m.height - reservedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	contentWidth := m.width
	if m.historyVisible() {
		m.history.SetSize(m.historyWidth(), contentHeight)
		contentWidth -= m.historyWidth()
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight

	inputWidth := m.width - 6 - len(m.input.Prompt)
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	// Narrow terminals drop the history panel; keep focus on the input.
	if !m.historyVisible() {
		m.setFocus(FocusInput)
	}

	m.updateViewport()
	return m, nil
}

// historyVisible reports whether the layout has room for the history panel.
func (m *Model) historyVisible() bool {
	return m.theme.GetLayoutMode() == styles.LayoutWide
}

// historyWidth returns the configured panel width, clamped to the screen.
func (m *Model) historyWidth() int {
	w := m.cfg.UI.HistoryWidth
	if w < 16 {
		w = 16
	}
	if max := m.width / 3; w > max && max >= 16 {
		w = max
	}
	return w
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.FocusToggle):
		if m.historyVisible() {
			if m.focus == FocusInput {
				m.setFocus(FocusHistory)
			} else {
				m.setFocus(FocusInput)
			}
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		return m.startNewChat()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == FocusHistory {
		return m.handleHistoryKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleHistoryKey moves the cursor through saved sessions and loads the
// one under it on enter.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.history.MoveUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.history.MoveDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		selected, ok := m.history.Selected()
		if !ok {
			return m, nil
		}
		cmd := m.orch.LoadSession(m.client, selected.ID)
		if cmd == nil {
			return m, nil
		}
		m.setFocus(FocusInput)
		return m, tea.Batch(cmd, m.spinner.Tick)

	case msg.String() == "esc":
		m.setFocus(FocusInput)
		return m, nil
	}
	return m, nil
}

// handleInputKey feeds keys to the text input, intercepting submission,
// viewport scrolling, and bare digit policy selection.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	// A bare digit on an empty input selects the matching policy from the
	// newest assistant message.
	if m.input.Value() == "" && len(keyStr) == 1 && keyStr >= "1" && keyStr <= "9" {
		if cmd := m.selectPolicyByNumber(int(keyStr[0] - '0')); cmd != nil {
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setFocus switches the focused panel and keeps the input cursor state in
// sync.
func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.history.Focused = focus == FocusHistory
	if focus == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submitInput routes the typed line: slash commands, a bare policy
// number, or a question for the assistant.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	if strings.HasPrefix(value, "/") {
		return m.handleSlashCommand(value)
	}

	if n, ok := policyNumber(value); ok {
		if cmd := m.selectPolicyByNumber(n); cmd != nil {
			m.input.Reset()
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
	}

	cmd := m.orch.SubmitQuery(m.client, value)
	if cmd == nil {
		return m, nil
	}
	m.input.Reset()
	m.typewriter.Stop()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// handleSlashCommand dispatches /new and /search.
func (m Model) handleSlashCommand(value string) (tea.Model, tea.Cmd) {
	command, args, _ := strings.Cut(value, " ")

	switch command {
	case "/new":
		m.input.Reset()
		return m.startNewChat()

	case "/search":
		query := strings.TrimSpace(args)
		if query == "" {
			m.statusMsg = "Usage: /search <query>"
			return m, nil
		}
		cmd := m.orch.SearchPolicies(m.client, query)
		if cmd == nil {
			return m, nil
		}
		m.input.Reset()
		m.typewriter.Stop()
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, tea.Batch(cmd, m.spinner.Tick)

	default:
		m.statusMsg = "Unknown command: " + command
		return m, nil
	}
}

// startNewChat resets to a fresh session, saving the outgoing one.
func (m Model) startNewChat() (tea.Model, tea.Cmd) {
	save := m.orch.StartNewChat(m.client)
	m.history.ActiveID = ""
	m.typewriter.Stop()
	m.updateViewport()
	m.viewport.GotoTop()
	return m, save
}

// selectPolicyByNumber maps a displayed policy number to a selection.
// Numbers refer to the newest assistant message; the rendered order and
// this order come from the same helper so they cannot drift apart.
func (m *Model) selectPolicyByNumber(n int) tea.Cmd {
	last, ok := m.orch.Transcript().Last()
	if !ok || !last.IsAssistant() {
		return nil
	}
	policies := components.OrderedPolicies(last)
	if n < 1 || n > len(policies) {
		return nil
	}
	return m.orch.SelectPolicy(m.client, policies[n-1])
}

// policyNumber parses a bare typed number like "2".
func policyNumber(value string) (int, bool) {
	if len(value) != 1 || value[0] < '1' || value[0] > '9' {
		return 0, false
	}
	return int(value[0] - '0'), true
}

// =============================================================================
// VIEWPORT
// =============================================================================

// revealLatest refreshes the transcript and starts the typewriter on the
// newest assistant reply.
func (m Model) revealLatest() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if last, ok := m.orch.Transcript().Last(); ok && last.IsAssistant() {
		cmd = m.typewriter.Start(last.Text)
	}
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, cmd
}

// updateViewport re-renders the transcript into the viewport.
func (m *Model) updateViewport() {
	m.list.SetMessages(m.orch.Transcript().Messages())
	m.list.SetWidth(m.viewport.Width)
	m.list.TypewriterActive = m.typewriter.Active()
	m.list.TypewriterPrefix = m.typewriter.Prefix()
	m.viewport.SetContent(m.list.View())
}
