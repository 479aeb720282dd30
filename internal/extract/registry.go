package extract

import (
	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects an extractor by media kind.
type Registry struct {
	extractors map[domain.MediaType]driven.Extractor
}

// NewRegistry creates a registry from the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		extractors: make(map[domain.MediaType]driven.Extractor, len(extractors)),
	}
	for _, e := range extractors {
		r.extractors[e.Media()] = e
	}
	return r
}

// DefaultRegistry creates a registry with the PDF and plain text
// extractors registered.
func DefaultRegistry() *Registry {
	return NewRegistry(NewPDF(), NewPlainText())
}

// ForMedia returns the extractor for the media kind.
func (r *Registry) ForMedia(media domain.MediaType) (driven.Extractor, error) {
	e, ok := r.extractors[media]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	return e, nil
}
