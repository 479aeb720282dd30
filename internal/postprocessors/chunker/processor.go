// Package chunker provides a boundary-aware overlapping text chunker.
package chunker

import "strings"

// Default configuration values.
const (
	// DefaultChunkSize is the default number of characters per chunk.
	DefaultChunkSize = 1000

	// DefaultOverlap is the default number of overlapping characters
	// between consecutive chunks.
	DefaultOverlap = 200

	// DefaultMinLength is the minimum chunk length; shorter fragments
	// are discarded as noise.
	DefaultMinLength = 50

	// boundaryMargin is how far around the raw cut point to look for a
	// line break or sentence end before cutting mid-sentence.
	boundaryMargin = 100
)

// Processor splits document text into overlapping chunks, preferring
// to cut at line breaks or sentence ends near the window boundary.
// Splitting is deterministic and side-effect free.
type Processor struct {
	chunkSize int
	overlap   int
	minLength int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithMinLength sets the minimum length below which chunks are dropped.
func WithMinLength(min int) Option {
	return func(p *Processor) {
		if min >= 0 {
			p.minLength = min
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
		minLength: DefaultMinLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Split divides text into ordered chunks. Empty input yields no
// chunks; input shorter than the chunk size yields at most one.
func (p *Processor) Split(text string) []string {
	if text == "" {
		return nil
	}

	n := len(text)
	chunks := make([]string, 0, n/(p.chunkSize-p.overlap)+1)

	start := 0
	for start < n {
		end := start + p.chunkSize
		if end < n {
			end = p.adjustBoundary(text, end)
			// The preferred boundary may sit behind the window start;
			// fall back to a raw cut so the scan always advances.
			if end <= start {
				end = start + p.chunkSize
			}
		}
		if end > n {
			end = n
		}

		chunks = append(chunks, strings.TrimSpace(text[start:end]))

		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
		// Stop once the remaining tail is smaller than the overlap.
		if start >= n-p.overlap && len(chunks) >= 1 {
			break
		}
	}

	kept := chunks[:0]
	for _, c := range chunks {
		if len(c) > p.minLength {
			kept = append(kept, c)
		}
	}
	return kept
}

// adjustBoundary moves a raw cut point to the nearest line break, or
// failing that the nearest sentence end, within the boundary margin.
// The cut lands just after the break so chunks end on whole sentences.
func (p *Processor) adjustBoundary(text string, end int) int {
	from := end - boundaryMargin
	if from < 0 {
		from = 0
	}

	if i := strings.Index(text[from:], "\n"); i != -1 {
		if abs := from + i; abs < end+boundaryMargin {
			return abs + 1
		}
	}
	if i := strings.Index(text[from:], ". "); i != -1 {
		if abs := from + i; abs < end+boundaryMargin {
			return abs + 2
		}
	}
	return end
}
