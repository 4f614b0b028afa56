package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	assert.Equal(t, []string{"vi"}, Command())

	t.Setenv("VISUAL", "nano")
	assert.Equal(t, []string{"nano"}, Command())

	t.Setenv("EDITOR", "code --wait")
	assert.Equal(t, []string{"code", "--wait"}, Command())
}

func TestOpen_Failure(t *testing.T) {
	t.Setenv("EDITOR", "false")
	err := Open(context.Background(), "/dev/null")
	assert.ErrorContains(t, err, `editor "false"`)
}
