package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"lernova/internal/modules/focus/domain"
	focusout "lernova/internal/modules/focus/port/out"
	"lernova/internal/platform/markdown"
	"lernova/internal/platform/slug"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

var indexBlock = markdown.NewBlock("lernova:sessions")

// VaultReportStore writes one Markdown note per ended session under
// <dir>/YYYY/MM/DD and keeps a managed list of that day's notes in index.md.
type VaultReportStore struct {
	dir string
}

func NewVaultReportStore(dir string) focusout.ReportStore {
	return &VaultReportStore{dir: dir}
}

func (s *VaultReportStore) Save(_ context.Context, session domain.Session) (string, error) {
	date := session.CreatedAt.UTC()
	dayDir := filepath.Join(s.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.Topic))
	path := filepath.Join(dayDir, name)

	var endedAt any
	if session.EndedAt != nil {
		endedAt = session.EndedAt.UTC().Format(timeLayout)
	}
	meta := []markdown.Field{
		{Key: "schema_version", Value: domain.SchemaVersion},
		{Key: "id", Value: session.ID},
		{Key: "user_id", Value: session.UserID},
		{Key: "topic", Value: session.Topic},
		{Key: "created_at", Value: session.CreatedAt.UTC().Format(timeLayout)},
		{Key: "ended_at", Value: endedAt},
		{Key: "urls_checked", Value: session.Stats.URLsChecked},
		{Key: "urls_allowed", Value: session.Stats.URLsAllowed},
		{Key: "urls_blocked", Value: session.Stats.URLsBlocked},
		{Key: "blocked_urls", Value: session.BlockedURLs},
	}
	rendered, err := markdown.RenderFrontmatter(meta, reportBody(session))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session report: %w", err)
	}
	if err := s.updateIndex(dayDir, strings.TrimSuffix(name, ".md")); err != nil {
		return "", err
	}
	return path, nil
}

func reportBody(session domain.Session) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Focus: %s\n\n", session.Topic)
	if session.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", session.Description)
	}
	if session.EndedAt != nil {
		minutes := int(session.EndedAt.Sub(session.CreatedAt).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		fmt.Fprintf(&b, "- Duration: %d minutes\n", minutes)
	}
	fmt.Fprintf(&b, "- Checked: %d\n- Allowed: %d\n- Blocked: %d\n", session.Stats.URLsChecked, session.Stats.URLsAllowed, session.Stats.URLsBlocked)
	if len(session.Keywords) > 0 {
		fmt.Fprintf(&b, "- Keywords: %s\n", strings.Join(session.Keywords, ", "))
	}
	if len(session.BlockedURLs) > 0 {
		b.WriteString("\n## Blocked\n\n")
		for _, u := range session.BlockedURLs {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}
	return b.String()
}

// updateIndex adds note to the managed block of index.md; text outside the
// block is kept.
func (s *VaultReportStore) updateIndex(dayDir, note string) error {
	indexPath := filepath.Join(dayDir, "index.md")
	existing, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read report index: %w", err)
	}
	entry := fmt.Sprintf("- [[%s]]", note)
	lines := indexBlock.Lines(string(existing))
	if slices.Contains(lines, entry) {
		return nil
	}
	lines = append(lines, entry)
	body := indexBlock.Replace(string(existing), strings.Join(lines, "\n"))
	if err := os.WriteFile(indexPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write report index: %w", err)
	}
	return nil
}
