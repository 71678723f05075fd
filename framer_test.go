package kubewatch

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader hands out one preset chunk per Read call, regardless of the
// size of the caller's buffer, to simulate arbitrary network chunking.
type chunkReader struct {
	chunks [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	chunk := r.chunks[0]
	if len(chunk) > len(p) {
		n := copy(p, chunk)
		r.chunks[0] = chunk[n:]
		return n, nil
	}
	n := copy(p, chunk)
	r.chunks = r.chunks[1:]
	return n, nil
}

func collectFrames(t *testing.T, f *Framer) []string {
	t.Helper()
	var frames []string
	for {
		frame, err := f.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, string(frame))
	}
}

func TestFramer_SplitsOnNewlines(t *testing.T) {
	f := NewFramer(strings.NewReader("a\nbb\nccc\n"))
	assert.Equal(t, []string{"a", "bb", "ccc"}, collectFrames(t, f))
}

func TestFramer_EmptyStream(t *testing.T) {
	f := NewFramer(strings.NewReader(""))
	_, err := f.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFramer_DanglingFinalLine(t *testing.T) {
	f := NewFramer(strings.NewReader("first\nsecond"))
	assert.Equal(t, []string{"first", "second"}, collectFrames(t, f))

	// EOF is sticky once the final frame has been handed out.
	_, err := f.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFramer_EmptyLines(t *testing.T) {
	f := NewFramer(strings.NewReader("\n\nx\n"))
	assert.Equal(t, []string{"", "", "x"}, collectFrames(t, f))
}

func TestFramer_ChunkBoundaryIndependence(t *testing.T) {
	const input = `{"type":"ADDED","object":{"id":1}}` + "\n" +
		`{"type":"MODIFIED","object":{"id":1}}` + "\n" +
		`{"type":"DELETED","object":{"id":1}}` + "\n"

	want := collectFrames(t, NewFramer(strings.NewReader(input)))
	require.Len(t, want, 3)

	partitions := map[string]io.Reader{
		"one byte at a time": iotest.OneByteReader(strings.NewReader(input)),
		"split mid-line": &chunkReader{chunks: [][]byte{
			[]byte(input[:10]),
			[]byte(input[10:50]),
			[]byte(input[50:]),
		}},
		"split on delimiters": &chunkReader{chunks: [][]byte{
			[]byte(input[:35]),
			[]byte(input[35:73]),
			[]byte(input[73:]),
		}},
		"single chunk": &chunkReader{chunks: [][]byte{[]byte(input)}},
		"with empty reads": &chunkReader{chunks: [][]byte{
			[]byte(input[:1]), {}, []byte(input[1:]),
		}},
	}

	for name, r := range partitions {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, collectFrames(t, NewFramer(r)))
		})
	}
}

func TestFramer_FrameLargerThanChunkSize(t *testing.T) {
	long := strings.Repeat("x", framerChunkSize*3+17)
	f := NewFramer(strings.NewReader("a\n" + long + "\nb\n"))
	assert.Equal(t, []string{"a", long, "b"}, collectFrames(t, f))
}

func TestFramer_ReadErrorSurfacesAfterBufferedFrames(t *testing.T) {
	f := NewFramer(io.MultiReader(
		strings.NewReader("complete\npartial"),
		iotest.ErrReader(io.ErrUnexpectedEOF),
	))

	frame, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, "complete", string(frame))

	_, err = f.Next()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
