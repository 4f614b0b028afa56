package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/focus/internal/model"
	"gopkg.in/yaml.v3"
)

// DecodeItem reads a task file: the record as YAML frontmatter, free-form
// markdown notes after it.
func DecodeItem(r io.Reader) (model.Item, string, error) {
	var it model.Item
	rest, err := frontmatter.Parse(r, &it)
	if err != nil {
		return it, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	if it.UUID == "" {
		return it, "", fmt.Errorf("task file has no uuid in its frontmatter")
	}
	return it, strings.TrimSpace(string(rest)), nil
}

// EncodeItem is the inverse of DecodeItem. The short id and urgency are
// computed on export and never written.
func EncodeItem(it *model.Item, body string) ([]byte, error) {
	meta, err := yaml.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	if body = strings.TrimSpace(body); body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
