package markdown

import (
	"strings"
	"testing"

	"github.com/rogersnm/focus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeItem_AllFields(t *testing.T) {
	input := `---
uuid: 39ecff7f-75d8-4194-9759-f7415508a203
description: "Write the release notes"
entry: 20260101T000000Z
status: pending
tags:
  - focus
  - docs
sortOrder: 2.5
project: release
---

Remember the migration section.
`
	it, body, err := DecodeItem(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "39ecff7f-75d8-4194-9759-f7415508a203", it.UUID)
	assert.Equal(t, "Write the release notes", it.Description)
	assert.Equal(t, model.StatusPending, it.Status)
	assert.Equal(t, []string{"focus", "docs"}, it.Tags)
	assert.Equal(t, 2.5, it.Fields["sortOrder"])
	assert.Equal(t, "release", it.Fields["project"])
	assert.Equal(t, "Remember the migration section.", body)
}

func TestDecodeItem_MissingUUID(t *testing.T) {
	_, _, err := DecodeItem(strings.NewReader("---\ndescription: x\n---\n"))
	assert.Error(t, err)
}

func TestDecodeItem_MalformedYAML(t *testing.T) {
	_, _, err := DecodeItem(strings.NewReader("---\n{{invalid yaml\n---\n"))
	assert.Error(t, err)
}

func TestEncodeItem_RoundTrip(t *testing.T) {
	short := 4
	it := &model.Item{
		UUID:        "u-1",
		ID:          &short,
		Description: "Round trip",
		Status:      model.StatusPending,
		Tags:        []string{"focus"},
	}
	it.SetField("sortOrder", -1.0)
	body := "Line 1\n\n```go\nfunc main() {}\n```"

	data, err := EncodeItem(it, body)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "id: 4")

	got, gotBody, err := DecodeItem(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, it.UUID, got.UUID)
	assert.Equal(t, it.Description, got.Description)
	assert.Equal(t, it.Tags, got.Tags)
	assert.Nil(t, got.ID)
	assert.Equal(t, -1, got.Fields["sortOrder"])
	assert.Equal(t, body, gotBody)
}

func TestEncodeItem_EmptyBody(t *testing.T) {
	it := &model.Item{UUID: "u-2", Description: "No body", Status: model.StatusPending}
	data, err := EncodeItem(it, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "---\n"))

	_, body, err := DecodeItem(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "", body)
}
