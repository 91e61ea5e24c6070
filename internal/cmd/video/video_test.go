package video

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVideo_Plain(t *testing.T) {
	var buf bytes.Buffer
	opts := &videoOptions{output: "plain", noColor: true, stdout: &buf}

	err := runVideo([]string{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"}, opts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ\tdQw4w9WgXcQ\thttps://www.youtube.com/embed/dQw4w9WgXcQ", lines[0])
	assert.Equal(t, "dQw4w9WgXcQ\tdQw4w9WgXcQ\thttps://www.youtube.com/embed/dQw4w9WgXcQ", lines[1])
}

func TestRunVideo_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := &videoOptions{output: "json", noColor: true, stdout: &buf}

	require.NoError(t, runVideo([]string{"https://www.youtube.com/shorts/dQw4w9WgXcQ"}, opts))

	var result []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "dQw4w9WgXcQ", result[0]["id"])
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", result[0]["embed"])
}

func TestRunVideo_Invalid(t *testing.T) {
	var buf bytes.Buffer
	opts := &videoOptions{output: "table", noColor: true, stdout: &buf}

	err := runVideo([]string{"dQw4w9WgXcQ", "https://vimeo.com/1", "dQw4w9WgXcQQ"}, opts)
	require.Error(t, err)
	assert.Equal(t, "2 of 3 inputs are not YouTube videos", err.Error())

	// The table is still printed.
	assert.Contains(t, buf.String(), "INPUT")
	assert.Contains(t, buf.String(), "https://vimeo.com/1")
}

func TestRunVideo_InvalidOutput(t *testing.T) {
	err := runVideo([]string{"dQw4w9WgXcQ"}, &videoOptions{output: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
