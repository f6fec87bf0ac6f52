package markdown

import "strings"

// Block is a generated region of a hand-edited note, delimited by HTML
// comment markers. Text outside the markers is never touched.
type Block struct {
	Start string
	End   string
}

func NewBlock(name string) Block {
	return Block{
		Start: "<!-- " + name + ":start -->",
		End:   "<!-- " + name + ":end -->",
	}
}

// Replace swaps the block's contents, appending the block when body has none.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + generated + "\n" + b.End
	if start, end, ok := b.bounds(body); ok {
		return body[:start] + block + body[end:]
	}
	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Lines returns the non-blank lines currently inside the block.
func (b Block) Lines(body string) []string {
	start, end, ok := b.bounds(body)
	if !ok {
		return nil
	}
	inner := body[start+len(b.Start) : end-len(b.End)]
	var out []string
	for _, line := range strings.Split(inner, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (b Block) bounds(body string) (int, int, bool) {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return 0, 0, false
	}
	end := strings.Index(body[start:], b.End)
	if end < 0 {
		return 0, 0, false
	}
	return start, start + end + len(b.End), true
}
