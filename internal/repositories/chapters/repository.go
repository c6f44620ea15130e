// Package chapters provides read-only access to the compiled chapter
// data the engine runs on.
package chapters

import (
	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

// Repository defines lookup over the compiled chapter records
type Repository interface {
	// Get retrieves a chapter by id
	Get(id int) (*entities.Chapter, error)

	// Count returns the number of compiled chapters
	Count() int
}

type inMemoryRepo struct {
	chapters map[int]*entities.Chapter
}

// NewInMemoryRepository wraps an already-loaded chapter map
func NewInMemoryRepository(chapters map[int]*entities.Chapter) Repository {
	return &inMemoryRepo{chapters: chapters}
}

// Get retrieves a chapter by id
func (r *inMemoryRepo) Get(id int) (*entities.Chapter, error) {
	chapter, ok := r.chapters[id]
	if !ok {
		return nil, apperr.NotFoundf("chapter %d not found", id).WithMeta("chapter_id", id)
	}
	return chapter, nil
}

// Count returns the number of compiled chapters
func (r *inMemoryRepo) Count() int {
	return len(r.chapters)
}
