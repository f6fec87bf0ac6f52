package domain

import "strings"

var separators = []string{"\n\n", "\n", " "}

// SplitText cuts text into chunks of at most size runes. Each chunk ends at
// the last paragraph, line or word break in its second half when there is
// one, and the next chunk starts overlap runes before that end.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size < 1 {
		return []string{text}
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); {
		end := start + size
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}
		end = breakBefore(runes, start, end)
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

func breakBefore(runes []rune, start, end int) int {
	window := string(runes[start:end])
	half := len(window) / 2
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= half {
			return start + len([]rune(window[:i+len(sep)]))
		}
	}
	return end
}
