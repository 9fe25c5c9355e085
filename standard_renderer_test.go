package loom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardRendererFirstFlushEmitsNoClearSequences(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandardRenderer(&buf)

	r.Write("hello\nworld")
	require.NoError(t, r.Flush())

	out := buf.String()
	assert.Equal(t, 0, strings.Count(out, "\x1b[1F"))
	assert.Equal(t, "hello\r\nworld\r\n", out)
}

func TestStandardRendererClearsExactlyThePreviousLineCount(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandardRenderer(&buf)

	r.Write("a\nb\nc")
	require.NoError(t, r.Flush())
	previousLines := strings.Count(buf.String(), "\r\n")
	buf.Reset()

	r.Write("x\ny")
	require.NoError(t, r.Flush())

	out := buf.String()
	assert.Equal(t, previousLines, strings.Count(out, "\x1b[1F"))
	assert.Equal(t, previousLines, strings.Count(out, "\x1b[2K"))
}

func TestStandardRendererTruncatesToKnownWidth(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandardRenderer(&buf)
	r.SetWidth(5)

	r.Write("abcdefghij")
	require.NoError(t, r.Flush())

	out := buf.String()
	firstLine := strings.SplitN(out, "\r\n", 2)[0]
	assert.LessOrEqual(t, len(firstLine), 5)
}

func TestScrollCommandsYieldRenderMsg(t *testing.T) {
	msg := SyncScrollAreaCmd([]string{"a", "b"}, 0, 2)()
	rm, ok := msg.(RenderMsg)
	require.True(t, ok)
	assert.Equal(t, SyncScrollArea, rm.Kind)
	assert.Equal(t, []string{"a", "b"}, rm.Lines)

	down, ok := ScrollDownCmd()().(RenderMsg)
	require.True(t, ok)
	assert.Equal(t, ScrollDown, down.Kind)

	up, ok := ScrollUpCmd()().(RenderMsg)
	require.True(t, ok)
	assert.Equal(t, ScrollUp, up.Kind)
}

func TestStandardRendererHandlesScrollPrimitives(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandardRenderer(&buf)

	require.NoError(t, r.HandleRenderMsg(RenderMsg{Kind: ScrollDown}))
	assert.Contains(t, buf.String(), "S")

	buf.Reset()
	require.NoError(t, r.HandleRenderMsg(RenderMsg{Kind: ScrollUp}))
	assert.Contains(t, buf.String(), "T")
}
