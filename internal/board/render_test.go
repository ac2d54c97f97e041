package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	rec := &recorder{}
	b, err := New(8, WithRenderer(rec))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, b.Render(&sb))
	markup := sb.String()

	assert.True(t, strings.HasPrefix(markup, "<tbody><tr><td "))
	assert.True(t, strings.HasSuffix(markup, "</td></tr></tbody>"))
	assert.Equal(t, 8, strings.Count(markup, "<tr>"))
	assert.Equal(t, 64, strings.Count(markup, "<td "))
	assert.Contains(t, markup,
		`<td class="cell inset-border" data-row-idx="3" data-column-idx="5" id="cell-3-5"></td>`)

	require.Len(t, rec.rendered, 64)
	assert.Equal(t, Coords{0, 0}, rec.rendered[0])
	assert.Equal(t, Coords{7, 7}, rec.rendered[63])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRenderWriteError(t *testing.T) {
	rec := &recorder{}
	b, err := New(8, WithRenderer(rec))
	require.NoError(t, err)

	assert.Error(t, b.Render(failingWriter{}))
	assert.Empty(t, rec.rendered)
}

func TestCellRenderNil(t *testing.T) {
	c := NewCell(1, 2)
	assert.NotPanics(t, func() { c.Render(nil) })
}
