package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("Short resume text.", 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Short resume text.", chunks[0])
}

func TestChunkText_EmptyText(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 200))
}

func TestChunkText_SplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	paraA := strings.Repeat("a", 400)
	paraB := strings.Repeat("b", 400)
	paraC := strings.Repeat("c", 400)
	text := paraA + "\n\n" + paraB + "\n\n" + paraC

	chunks := chunker.ChunkText(text, 900, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 900)
	}
}

func TestChunkText_OversizedParagraphSplitsOnSentences(t *testing.T) {
	chunker := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("This sentence pads out a single very long paragraph. ")
	}

	chunks := chunker.ChunkText(sb.String(), 500, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 500)
	}
}

func TestChunkText_OverlapCarriesContext(t *testing.T) {
	chunker := NewTextChunker()

	paraA := strings.Repeat("a", 400)
	paraB := strings.Repeat("b", 400)
	text := paraA + "\n\n" + paraB

	chunks := chunker.ChunkText(text, 450, 50)

	require.Len(t, chunks, 2)
	// Second chunk starts with the tail of the first
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("a", 50)))
}

func TestChunkText_DegenerateParametersNormalized(t *testing.T) {
	chunker := NewTextChunker()

	// Zero size and negative overlap must not panic or loop
	chunks := chunker.ChunkText("some text here", 0, -10)
	require.Len(t, chunks, 1)

	// Overlap larger than the chunk size is reduced, not honored
	chunks = chunker.ChunkText(strings.Repeat("x", 50)+"\n\n"+strings.Repeat("y", 50), 60, 100)
	assert.NotEmpty(t, chunks)
}
