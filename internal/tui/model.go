// Package tui is the interactive chat screen: a transcript viewport, a
// single-line input, and a spinner while any reply is outstanding.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lawblox.app/assistant/internal/assistant"
)

const placeholder = "Describe your matter... (Enter to send, Esc to exit)"

// replyMsg carries a finished turn back to the Update loop.
type replyMsg struct {
	msg assistant.Message
}

type Model struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer

	conv   *assistant.Conversation
	ctx    context.Context
	width  int
	height int
	ready  bool
}

func New(ctx context.Context, conv *assistant.Conversation) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		textinput: ti,
		spinner:   sp,
		conv:      conv,
		ctx:       ctx,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}
		// Letters go to the input only; the viewport binds j/k/f/b.
		m.textinput, tiCmd = m.textinput.Update(msg)
		return m, tiCmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.conv.Pending() == 0 {
			return m, nil
		}
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		return m, spCmd

	case replyMsg:
		m.refresh()
		return m, nil
	}

	m.textinput, tiCmd = m.textinput.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// handleSubmit appends the user's line and starts its turn. Earlier turns
// may still be outstanding; each reply lands whenever it arrives.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	turn, ok := m.conv.Submit(m.textinput.Value())
	if !ok {
		return m, nil
	}

	m.textinput.Reset()
	m.refresh()

	return m, tea.Batch(
		m.spinner.Tick,
		m.runTurn(turn),
	)
}

func (m Model) runTurn(turn *assistant.Turn) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return replyMsg{msg: turn.Run(ctx)}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := max(height-headerHeight-footerHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.textinput.Width = max(width-4, 10)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err == nil {
		m.renderer = renderer
	}
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, msg := range m.conv.Transcript() {
		if msg.FromUser {
			b.WriteString(userStyle.Render("You: " + msg.Text))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(m.renderBot(msg.Text))
	}
	return b.String()
}

func (m Model) renderBot(text string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			return out
		}
	}
	return botStyle.Render(text) + "\n\n"
}

// Run takes over the terminal until the user quits.
func Run(ctx context.Context, conv *assistant.Conversation) error {
	p := tea.NewProgram(New(ctx, conv), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
