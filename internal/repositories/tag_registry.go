package repositories

import (
	"context"
	"encoding/json"
	"log"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
)

// TagRepository persists the set of known tag names. It has no referential
// link to the card file; callers cascade deletes themselves.
type TagRepository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, tags []string) error
	Add(ctx context.Context, tags []string) ([]string, error)
	Delete(ctx context.Context, tags []string) ([]string, error)
}

type tagRepository struct {
	path string
	lock *fileLock
}

// NewTagRepository returns a registry stored as a JSON array at path.
func NewTagRepository(path string, opts StoreOptions) TagRepository {
	return &tagRepository{
		path: path,
		lock: newFileLock(path, opts.LockTimeout, opts.LockRetry),
	}
}

func (r *tagRepository) Load(ctx context.Context) ([]string, error) {
	var data []byte
	err := r.lock.with(ctx, false, func() error {
		var err error
		data, err = readFileIfExists(r.path)
		return err
	})
	if err != nil {
		return nil, domainerrors.IO("read tags file", err)
	}
	return r.decode(data), nil
}

func (r *tagRepository) Save(ctx context.Context, tags []string) error {
	err := r.lock.with(ctx, true, func() error {
		return r.write(tags)
	})
	if err != nil {
		return domainerrors.IO("write tags file", err)
	}
	return nil
}

func (r *tagRepository) Add(ctx context.Context, tags []string) ([]string, error) {
	return r.modify(ctx, func(current []string) []string {
		return models.NormalizeTags(append(current, tags...))
	})
}

func (r *tagRepository) Delete(ctx context.Context, tags []string) ([]string, error) {
	drop := make(map[string]bool, len(tags))
	for _, t := range tags {
		drop[t] = true
	}
	return r.modify(ctx, func(current []string) []string {
		kept := make([]string, 0, len(current))
		for _, t := range current {
			if !drop[t] {
				kept = append(kept, t)
			}
		}
		return kept
	})
}

func (r *tagRepository) modify(ctx context.Context, fn func([]string) []string) ([]string, error) {
	var result []string
	err := r.lock.with(ctx, true, func() error {
		data, err := readFileIfExists(r.path)
		if err != nil {
			return err
		}
		result = models.NormalizeTags(fn(r.decode(data)))
		return r.write(result)
	})
	if err != nil {
		return nil, domainerrors.IO("update tags file", err)
	}
	return result, nil
}

// decode treats a malformed file as an empty registry.
func (r *tagRepository) decode(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		log.Printf("⚠️ %s is not a JSON string array, treating as empty: %v", r.path, err)
		return []string{}
	}
	return models.NormalizeTags(tags)
}

func (r *tagRepository) write(tags []string) error {
	data, err := json.MarshalIndent(models.NormalizeTags(tags), "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, append(data, '\n'), 0o644)
}
