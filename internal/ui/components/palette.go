package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lernova/internal/ui/theme"
)

// Command is one entry of the focus console's command table.
type Command struct {
	Name string
	Args string
	Help string
}

func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commands lists what the console understands, in display order.
var Commands = []Command{
	{Name: "focus:start", Args: "<topic> [| keyword, keyword]", Help: "start a session, replacing the active one"},
	{Name: "focus:end", Help: "end the active session and show its stats"},
	{Name: "focus:check", Args: "<url>", Help: "classify a url against the session topic"},
	{Name: "focus:quick", Args: "<url>", Help: "keyword and distraction check, no oracle"},
	{Name: "focus:suggest", Args: "[topic]", Help: "learning sites for a topic or the active session"},
	{Name: "settings:strict", Args: "<on|off>", Help: "block when the oracle is unavailable"},
	{Name: "settings:enabled", Args: "<on|off>", Help: "turn focus mode on or off"},
}

// Lookup returns the command named name.
func Lookup(name string) (Command, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// ParseCommand splits input into the command word and its trimmed argument.
func ParseCommand(input string) (name, arg string) {
	input = strings.TrimSpace(input)
	name, arg, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}

// PaletteSubmitMsg carries a confirmed command line.
type PaletteSubmitMsg struct {
	Command string
	Arg     string
}

type PaletteCancelMsg struct{}

const maxMatches = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette reads one console command. Tab completes the command word and
// up/down walk through earlier submissions.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "focus:start <topic>"
	ti.CharLimit = 512
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p Palette) Value() string { return p.input.Value() }

// Open shows an empty palette and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Matches returns the commands whose name starts with the typed command word.
// Once an argument is being typed only the exact command matches.
func (p Palette) Matches() []Command {
	raw := strings.TrimLeft(p.input.Value(), " ")
	name, _ := ParseCommand(raw)
	exact := strings.Contains(raw, " ")
	var out []Command
	for _, c := range Commands {
		if (exact && c.Name == name) || (!exact && strings.HasPrefix(c.Name, name)) {
			out = append(out, c)
		}
		if len(out) == maxMatches {
			break
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			if line != "" {
				p.history = append(p.history, line)
			}
			name, arg := ParseCommand(line)
			return p, func() tea.Msg { return PaletteSubmitMsg{Command: name, Arg: arg} }
		case "tab":
			p.complete()
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// complete fills in the longest name prefix shared by the matches, plus a
// trailing space when only one command is left.
func (p *Palette) complete() {
	if strings.Contains(strings.TrimLeft(p.input.Value(), " "), " ") {
		return
	}
	matches := p.Matches()
	if len(matches) == 0 {
		return
	}
	common := matches[0].Name
	for _, c := range matches[1:] {
		for !strings.HasPrefix(c.Name, common) {
			common = common[:len(common)-1]
		}
	}
	if len(matches) == 1 {
		common += " "
	}
	p.input.SetValue(common)
	p.input.CursorEnd()
}

func (p *Palette) step(delta int) {
	if len(p.history) == 0 {
		return
	}
	p.recall = max(0, min(len(p.history), p.recall+delta))
	if p.recall == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[p.recall])
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")

	matches := p.Matches()
	switch {
	case len(matches) == 0:
		sb.WriteString("\n" + helpStyle.Render("  no such command") + "\n")
	case len(matches) == 1:
		sb.WriteString("\n" + usageStyle.Render("  "+matches[0].Usage()) + "\n")
		sb.WriteString(helpStyle.Render("  "+matches[0].Help) + "\n")
	default:
		sb.WriteString("\n")
		for _, c := range matches {
			sb.WriteString(helpStyle.Render("  "+c.Usage()+"  "+c.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
