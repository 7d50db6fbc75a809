package portfolio

import (
	"context"
	"strings"
	"time"

	"cardfolio/internal/models"
	"cardfolio/internal/repositories"
	"cardfolio/internal/validation"
)

func (s *service) ListTags(ctx context.Context) (tags []string, err error) {
	defer s.track("list_tags", time.Now(), &err)
	return s.tags.Load(ctx)
}

func (s *service) CreateTags(ctx context.Context, tags []string) (out []string, err error) {
	defer s.track("create_tags", time.Now(), &err)
	if err := validateTags(tags); err != nil {
		return nil, err
	}
	return s.tags.Add(ctx, tags)
}

// DeleteTags removes tags from the registry, then strips them from every
// card. The two files are written separately; if the card save fails the
// registry change stays.
func (s *service) DeleteTags(ctx context.Context, tags []string) (out []string, err error) {
	defer s.track("delete_tags", time.Now(), &err)
	if err := validateTags(tags); err != nil {
		return nil, err
	}
	drop := models.NormalizeTags(tags)

	out, err = s.tags.Delete(ctx, drop)
	if err != nil {
		return nil, err
	}
	err = s.apply(ctx, func(set *repositories.RecordSet) error {
		for i := range set.Cards {
			set.Cards[i].Tags = withoutTags(set.Cards[i].Tags, drop)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateTags(tags []string) error {
	v := validation.New()
	v.Struct(models.TagsInput{Tags: tags})
	for _, t := range tags {
		v.Check(!strings.Contains(t, ","), "tags", "must not contain commas")
	}
	return v.Err()
}

func withoutTags(tags, drop []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		keep := true
		for _, d := range drop {
			if t == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}
