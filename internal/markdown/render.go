package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	waitingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	focusTagStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	clearStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "completed", "deleted":
		return doneStyle
	case "waiting", "recurring":
		return waitingStyle
	default:
		return pendingStyle
	}
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderStatus(status string) string {
	return StatusStyle(status).Render(status)
}

// RenderTags highlights the focus tag among the others.
func RenderTags(tags []string, focusTag string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		if t == focusTag {
			parts[i] = focusTagStyle.Render("+" + t)
		} else {
			parts[i] = "+" + t
		}
	}
	return strings.Join(parts, " ")
}

// RenderKey formats an ordering key; nil renders as a dash.
func RenderKey(k *float64) string {
	if k == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *k)
}

func RenderCleared() string {
	return clearStyle.Render("(cleared)")
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}
