package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	p := New()
	assert.Nil(t, p.Split(""))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	p := New()

	text := strings.Repeat("studying is good for you. ", 5)
	chunks := p.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(text), chunks[0])
}

func TestSplit_DropsTinyFragments(t *testing.T) {
	p := New()

	// Below the minimum length, so nothing survives the filter.
	chunks := p.Split("too short to keep")
	assert.Empty(t, chunks)

	// Exactly at the minimum length is still dropped; the filter is strict.
	atMin := strings.Repeat("x", 50)
	assert.Empty(t, p.Split(atMin))

	overMin := strings.Repeat("x", 51)
	assert.Len(t, p.Split(overMin), 1)
}

func TestSplit_LongTextOverlaps(t *testing.T) {
	p := New()

	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("This sentence pads the document with enough words for splitting tests.\n")
	}
	text := b.String()

	chunks := p.Split(text)
	require.Greater(t, len(chunks), 1)

	// Every chunk respects the size bound plus the boundary margin.
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize+2*boundaryMargin)
		assert.Greater(t, len(c), DefaultMinLength)
	}

	// Consecutive chunks share text: the head of each follow-up chunk
	// appears in its predecessor.
	for i := 1; i < len(chunks); i++ {
		head := chunks[i]
		if len(head) > 40 {
			head = head[:40]
		}
		assert.Contains(t, chunks[i-1], head, "chunk %d should overlap with chunk %d", i, i-1)
	}
}

func TestSplit_PrefersLineBreakBoundary(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))

	// A newline sits just before the raw cut point at 100.
	line := strings.Repeat("a", 90) + "\n"
	text := line + strings.Repeat("b", 200)

	chunks := p.Split(text)
	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("a", 90), chunks[0])
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))

	// No newline, but a sentence end near the cut point.
	text := strings.Repeat("a", 88) + ". " + strings.Repeat("b", 200)

	chunks := p.Split(text)
	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("a", 88)+".", chunks[0])
}

func TestSplit_CoversAllText(t *testing.T) {
	p := New()

	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Unique marker sentence number with plenty of padding text here.\n")
	}
	text := b.String()

	chunks := p.Split(text)
	require.NotEmpty(t, chunks)

	// The last chunk reaches the end of the input.
	last := chunks[len(chunks)-1]
	tail := strings.TrimSpace(text)
	assert.True(t, strings.HasSuffix(tail, last[len(last)-30:]))
}

func TestNew_OverlapClamped(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, p.overlap)

	p = New(WithChunkSize(100), WithOverlap(150))
	assert.Equal(t, 25, p.overlap)
}

func TestNew_IgnoresInvalidOptions(t *testing.T) {
	p := New(WithChunkSize(0), WithOverlap(-1), WithMinLength(-5))
	assert.Equal(t, DefaultChunkSize, p.chunkSize)
	assert.Equal(t, DefaultOverlap, p.overlap)
	assert.Equal(t, DefaultMinLength, p.minLength)
}
