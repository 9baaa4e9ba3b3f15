// Package output renders CLI lists with consistent styling.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cchooks/gohooks/internal/shared"
)

// ListRenderer provides styled list formatting.
type ListRenderer struct {
	titleStyle  lipgloss.Style
	itemStyle   lipgloss.Style
	bulletStyle lipgloss.Style
	bullet      string
	indent      string
}

// NewListRenderer creates a new list renderer with default styling.
func NewListRenderer() *ListRenderer {
	return &ListRenderer{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(shared.Mauve),
		itemStyle:   lipgloss.NewStyle().Foreground(shared.Text),
		bulletStyle: lipgloss.NewStyle().Foreground(shared.Blue),
		bullet:      "•",
		indent:      "  ",
	}
}

// Render formats a title and list of items.
func (l *ListRenderer) Render(title string, items []string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(l.titleStyle.Render(title))
		sb.WriteString("\n")
	}

	for _, item := range items {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(l.bullet))
		sb.WriteString(" ")
		sb.WriteString(l.itemStyle.Render(item))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderMap formats a title and map of key-value pairs, sorted by key.
func (l *ListRenderer) RenderMap(title string, items map[string]string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(l.titleStyle.Render(title))
		sb.WriteString("\n")
	}

	keys := make([]string, 0, len(items))
	maxKeyLen := 0
	for key := range items {
		keys = append(keys, key)
		if len(key) > maxKeyLen {
			maxKeyLen = len(key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(l.indent)

		styledKey := l.bulletStyle.Render(fmt.Sprintf("%-*s", maxKeyLen, key))
		sb.WriteString(styledKey)
		sb.WriteString(": ")
		sb.WriteString(l.itemStyle.Render(items[key]))
		sb.WriteString("\n")
	}

	return sb.String()
}
