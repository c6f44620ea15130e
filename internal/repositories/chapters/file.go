package chapters

import (
	"encoding/json"
	"os"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

// LoadFile reads a compiled game data artifact (the output of
// `gamebook compile`) into a repository. The artifact is a JSON object
// keyed by stringified chapter id.
func LoadFile(path string) (Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to read game data '%s'", path)
	}

	var loaded map[int]*entities.Chapter
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, apperr.Wrapf(err, "invalid game data '%s'", path)
	}

	return NewInMemoryRepository(loaded), nil
}
