package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaType(t *testing.T) {
	media, err := ParseMediaType("application/pdf")
	require.NoError(t, err)
	assert.Equal(t, MediaPDF, media)

	media, err = ParseMediaType("text/plain")
	require.NoError(t, err)
	assert.Equal(t, MediaText, media)

	_, err = ParseMediaType("image/png")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ParseMediaType("")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestScope_Validate(t *testing.T) {
	assert.NoError(t, DocumentScope("doc-1").Validate())
	assert.NoError(t, WorkspaceScope("ws-1").Validate())

	assert.ErrorIs(t, Scope{}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Scope{DocumentID: "d", WorkspaceID: "w"}.Validate(), ErrInvalidInput)
}

func TestScope_IsWorkspace(t *testing.T) {
	assert.False(t, DocumentScope("doc-1").IsWorkspace())
	assert.True(t, WorkspaceScope("ws-1").IsWorkspace())
}

func TestRetrievedContext_TextJoins(t *testing.T) {
	rc := &RetrievedContext{
		Items: []ContextItem{
			{Content: "alpha"},
			{Content: "beta"},
			{Content: "gamma"},
		},
	}
	assert.Equal(t, "alpha\n\n---\n\nbeta\n\n---\n\ngamma", rc.Text())

	empty := &RetrievedContext{}
	assert.Equal(t, "", empty.Text())
}
