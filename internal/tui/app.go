package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/comeback-api/internal/history"
	"github.com/Conceptual-Machines/comeback-api/internal/prompt"
	"github.com/Conceptual-Machines/comeback-api/internal/surface"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusInput focus = iota
	focusPanel
)

const (
	inputWidth      = 72
	inputHeight     = 4
	historyPreview  = 48
	defaultWidth    = 80
	inputCharLimit  = 2000
	intensityFilled = "■"
	intensityEmpty  = "□"
)

// generatedMsg carries the result of one generator call back to the update loop
type generatedMsg struct {
	req       surface.Request
	responses []string
	err       error
}

// App is the bubbletea model hosting the comeback surface
type App struct {
	ctx     context.Context
	surface *surface.Surface

	input   textarea.Model
	spinner spinner.Model
	focus   focus
	cursor  int
	notice  *surface.Notice
	width   int
}

// NewApp builds the model. clipboard may be nil when the system has none.
func NewApp(ctx context.Context, generator surface.Generator, hist *history.Manager, clipboard surface.Clipboard) *App {
	ta := textarea.New()
	ta.Placeholder = "What did they say? (enter to generate, esc to quit)"
	ta.Prompt = "┃ "
	ta.CharLimit = inputCharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(inputWidth)
	ta.SetHeight(inputHeight)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	a := &App{
		ctx:   ctx,
		input: ta,
		spinner: spinner.New(
			spinner.WithStyle(lipgloss.NewStyle().Foreground(colorPrimary)),
			spinner.WithSpinner(spinner.Dot),
		),
		width: defaultWidth,
	}

	opts := []surface.Option{surface.WithNotifier(a.notify)}
	if clipboard != nil {
		opts = append(opts, surface.WithClipboard(clipboard))
	}
	a.surface = surface.New(generator, hist, opts...)
	return a
}

// Surface exposes the underlying interaction state
func (a *App) Surface() *surface.Surface {
	return a.surface
}

func (a *App) notify(n surface.Notice) {
	a.notice = &n
}

func (a *App) Init() tea.Cmd {
	if err := a.surface.Mount(); err != nil {
		a.notify(surface.Notice{Kind: surface.NoticeError, Title: "History unavailable", Message: err.Error()})
	}
	return textarea.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.input.SetWidth(min(inputWidth, max(msg.Width-4, 20)))
		return a, nil

	case spinner.TickMsg:
		if !a.surface.Submitting() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case generatedMsg:
		a.surface.Finish(msg.req, msg.responses, msg.err)
		a.cursor = 0
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		if a.surface.Submitting() {
			return a, nil
		}
		a.notice = nil
		if key.Matches(msg, keys.Tab) {
			a.toggleFocus()
			return a, nil
		}
		if key.Matches(msg, keys.IntensityDown) {
			a.surface.SetIntensity(a.surface.Intensity() - 1)
			return a, nil
		}
		if key.Matches(msg, keys.IntensityUp) {
			a.surface.SetIntensity(a.surface.Intensity() + 1)
			return a, nil
		}
		if a.focus == focusPanel {
			return a.updatePanel(msg)
		}
		return a.updateInput(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Submit) {
		return a, a.submit()
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.surface.SetText(a.input.Value())
	return a, cmd
}

func (a *App) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.PanelLeft):
		a.surface.SetIntensity(a.surface.Intensity() - 1)
	case key.Matches(msg, keys.PanelRight):
		a.surface.SetIntensity(a.surface.Intensity() + 1)
	case key.Matches(msg, keys.Copy):
		i := int(msg.Runes[0] - '1')
		if err := a.surface.Copy(i); err != nil && !errors.Is(err, surface.ErrNoSuchResponse) {
			a.notify(surface.Notice{Kind: surface.NoticeError, Title: "Copy failed", Message: err.Error()})
		}
	case key.Matches(msg, keys.Clear):
		a.surface.ClearResults()
		a.cursor = 0
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.surface.RecentHistory())-1 {
			a.cursor++
		}
	case key.Matches(msg, keys.Submit):
		if len(a.surface.RecentHistory()) == 0 {
			return a, nil
		}
		if err := a.surface.SelectHistory(a.cursor); err == nil {
			a.input.SetValue(a.surface.Text())
		}
	}
	return a, nil
}

func (a *App) toggleFocus() {
	if a.focus == focusInput {
		a.focus = focusPanel
		a.input.Blur()
		return
	}
	a.focus = focusInput
	a.input.Focus()
}

// submit begins a generation and returns the command that performs it
func (a *App) submit() tea.Cmd {
	a.surface.SetText(a.input.Value())
	req, err := a.surface.Begin()
	if err != nil {
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.generate(req))
}

func (a *App) generate(req surface.Request) tea.Cmd {
	return func() tea.Msg {
		responses, err := a.surface.Run(a.ctx, req)
		return generatedMsg{req: req, responses: responses, err: err}
	}
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(styleLogo.Render("吵架包赢"))
	b.WriteString(" ")
	b.WriteString(styleSubtitle.Render("comebacks on demand"))
	b.WriteString("\n\n")

	inputBox := styleBox
	if a.focus == focusInput {
		inputBox = styleFocusedBox
	}
	b.WriteString(inputBox.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.intensityView())
	b.WriteString("\n\n")

	if a.surface.Submitting() {
		b.WriteString(a.spinner.View() + " Thinking...\n")
	}

	if responses := a.surface.Responses(); len(responses) > 0 {
		b.WriteString(a.panelBox().Render(a.responsesView(responses)))
		b.WriteString("\n")
	} else if recent := a.surface.RecentHistory(); len(recent) > 0 {
		b.WriteString(a.panelBox().Render(a.historyView()))
		b.WriteString("\n")
	}

	if a.notice != nil {
		style := styleStatusBar
		if a.notice.Kind == surface.NoticeError {
			style = styleError
		}
		b.WriteString(style.Render(a.notice.Title + ": " + a.notice.Message))
		b.WriteString("\n")
	}

	b.WriteString(styleStatusBar.Render(a.helpLine()))
	return b.String()
}

func (a *App) panelBox() lipgloss.Style {
	if a.focus == focusPanel {
		return styleFocusedBox
	}
	return styleBox
}

func (a *App) intensityView() string {
	n := a.surface.Intensity()
	bar := strings.Repeat(intensityFilled, n) + strings.Repeat(intensityEmpty, prompt.MaxIntensity-n)
	return fmt.Sprintf("Intensity %s %s %s",
		styleIntensity.Render(bar),
		styleIntensity.Render(fmt.Sprintf("%d/%d", n, prompt.MaxIntensity)),
		styleSubtitle.Render(a.surface.ToneLabel()))
}

func (a *App) responsesView(responses []string) string {
	lines := make([]string, 0, len(responses))
	for i, r := range responses {
		lines = append(lines, styleResponse.Render(fmt.Sprintf("%d.", i+1))+" "+r)
	}
	return strings.Join(lines, "\n")
}

func (a *App) historyView() string {
	lines := []string{styleSubtitle.Render("Recent arguments")}
	for i, entry := range a.surface.RecentHistory() {
		line := fmt.Sprintf("%s  (%d/10, %d responses)",
			truncate(strings.ReplaceAll(entry.Opponent, "\n", " "), historyPreview),
			entry.Intensity, len(entry.Responses))
		if a.focus == focusPanel && i == a.cursor {
			line = styleSelected.Render("› " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) helpLine() string {
	if a.focus == focusInput {
		return "enter generate • ctrl+←/→ intensity • tab results/history • esc quit"
	}
	return "1-3 copy • ←/→ intensity • ↑/↓ + enter restore • c clear • tab input • esc quit"
}
