package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lernova/internal/ui/components"
)

func typeText(p components.Palette, text string) components.Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func key(p components.Palette, k tea.KeyType) (components.Palette, tea.Msg) {
	p, cmd := p.Update(tea.KeyMsg{Type: k})
	if cmd == nil {
		return p, nil
	}
	return p, cmd()
}

func openPalette() components.Palette {
	p := components.NewPalette()
	p.Open()
	return p
}

func TestParseCommand(t *testing.T) {
	t.Parallel()
	name, arg := components.ParseCommand("  Focus:Start  Go generics | go  ")
	if name != "focus:start" || arg != "Go generics | go" {
		t.Fatalf("unexpected parse %q %q", name, arg)
	}
	if name, arg := components.ParseCommand("   "); name != "" || arg != "" {
		t.Fatalf("blank input should parse empty, got %q %q", name, arg)
	}
	if c, ok := components.Lookup("focus:check"); !ok || c.Usage() != "focus:check <url>" {
		t.Fatalf("unexpected lookup %+v %v", c, ok)
	}
	if c, ok := components.Lookup("focus:end"); !ok || c.Usage() != "focus:end" {
		t.Fatalf("command without args should print bare usage, got %+v", c)
	}
}

func TestPaletteMatchesByCommandWord(t *testing.T) {
	t.Parallel()
	p := openPalette()
	if got := len(p.Matches()); got != 5 {
		t.Fatalf("empty input should list the first 5 commands, got %d", got)
	}

	p = typeText(p, "settings:")
	if got := p.Matches(); len(got) != 2 || got[0].Name != "settings:strict" {
		t.Fatalf("unexpected settings matches %+v", got)
	}

	p = openPalette()
	p = typeText(p, "focus:check https://go.dev")
	if got := p.Matches(); len(got) != 1 || got[0].Name != "focus:check" {
		t.Fatalf("argument typing should pin the exact command, got %+v", got)
	}

	p = openPalette()
	p = typeText(p, "nope")
	if len(p.Matches()) != 0 {
		t.Fatalf("unknown prefix should match nothing")
	}
}

func TestPaletteTabCompletes(t *testing.T) {
	t.Parallel()
	p := openPalette()
	p = typeText(p, "fo")
	p, _ = key(p, tea.KeyTab)
	if p.Value() != "focus:" {
		t.Fatalf("tab should extend to the shared prefix, got %q", p.Value())
	}

	p = typeText(p, "su")
	p, _ = key(p, tea.KeyTab)
	if p.Value() != "focus:suggest " {
		t.Fatalf("tab should finish a unique command, got %q", p.Value())
	}

	p = typeText(p, "rust")
	p, _ = key(p, tea.KeyTab)
	if p.Value() != "focus:suggest rust" {
		t.Fatalf("tab must not touch the argument, got %q", p.Value())
	}
}

func TestPaletteSubmitCancelAndHistory(t *testing.T) {
	t.Parallel()
	p := openPalette()
	p = typeText(p, "focus:quick  https://youtube.com ")
	p, msg := key(p, tea.KeyEnter)
	submit, ok := msg.(components.PaletteSubmitMsg)
	if !ok || submit.Command != "focus:quick" || submit.Arg != "https://youtube.com" {
		t.Fatalf("unexpected submit %#v", msg)
	}
	if p.Visible() {
		t.Fatalf("palette should close on submit")
	}

	p.Open()
	p, _ = key(p, tea.KeyUp)
	if p.Value() != "focus:quick  https://youtube.com" {
		t.Fatalf("up should recall the last command, got %q", p.Value())
	}
	p, _ = key(p, tea.KeyDown)
	if p.Value() != "" {
		t.Fatalf("down past the newest entry should clear, got %q", p.Value())
	}

	p, msg = key(p, tea.KeyEsc)
	if _, ok := msg.(components.PaletteCancelMsg); !ok || p.Visible() {
		t.Fatalf("esc should cancel and close, got %#v", msg)
	}
}
