package portfolio

import (
	"context"
	"log"
	"time"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/repositories"
	"cardfolio/internal/services/catalog"
	"cardfolio/internal/services/insights"
)

type service struct {
	repo    repositories.CreditCardRepository
	tags    repositories.TagRepository
	catalog catalog.Catalog
	config  Config
	metrics MetricsCollector
}

// NewService creates a new portfolio service
func NewService(
	repo repositories.CreditCardRepository,
	tags repositories.TagRepository,
	cat catalog.Catalog,
	config Config,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if tags == nil {
		panic("tag repository is required")
	}
	if cat == nil {
		panic("catalog is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		tags:    tags,
		catalog: cat,
		config:  config.withDefaults(),
		metrics: metrics,
	}
}

func (s *service) today() time.Time {
	return models.Date(s.config.Now())
}

// track reports the duration and outcome of op. Use as
// defer s.track("op", time.Now(), &err).
func (s *service) track(op string, start time.Time, err *error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	result := resultOf(*err)
	s.metrics.RecordOperationResult(op, result)
	if result == ResultIOError || result == ResultLockTimeout {
		log.Printf("⚠️ %s failed: %v", op, *err)
	}
}

// apply runs fn against a fresh snapshot and saves the result. fn returning
// an error leaves the file untouched.
func (s *service) apply(ctx context.Context, fn func(set *repositories.RecordSet) error) error {
	if s.config.Transactional {
		return s.repo.Update(ctx, fn)
	}
	set, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(set); err != nil {
		return err
	}
	return s.repo.Save(ctx, set)
}

// mutate applies fn to one card and returns a copy of it as saved.
func (s *service) mutate(ctx context.Context, id string, fn func(set *repositories.RecordSet, c *models.CreditCard) error) (*models.CreditCard, error) {
	var out models.CreditCard
	err := s.apply(ctx, func(set *repositories.RecordSet) error {
		c, ok := set.Find(id)
		if !ok {
			return domainerrors.NotFound(id)
		}
		if err := fn(set, c); err != nil {
			return err
		}
		out = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Snapshot(ctx context.Context) (set *repositories.RecordSet, err error) {
	defer s.track("snapshot", time.Now(), &err)
	return s.repo.Load(ctx)
}

// List returns the cards matching opts in the requested order, with the
// load warnings. Due order is computed against the service clock.
func (s *service) List(ctx context.Context, opts ListOptions) (set *repositories.RecordSet, err error) {
	defer s.track("list", time.Now(), &err)
	set, err = s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]models.CreditCard, 0, len(set.Cards))
	for _, c := range set.Cards {
		switch {
		case opts.Status == StatusActive && !c.Active():
			continue
		case opts.Status == StatusCancelled && c.Active():
			continue
		}
		cards = append(cards, c)
	}
	insights.SortByOrder(cards)
	if opts.Order == OrderDue {
		insights.SortByDue(cards, s.today())
	}
	return &repositories.RecordSet{Cards: cards, Warnings: set.Warnings}, nil
}

func (s *service) Get(ctx context.Context, id string) (card *models.CreditCard, err error) {
	defer s.track("get", time.Now(), &err)
	set, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := set.Find(id)
	if !ok {
		return nil, domainerrors.NotFound(id)
	}
	out := *c
	return &out, nil
}

func (s *service) Dashboard(ctx context.Context) (d *models.Dashboard, err error) {
	defer s.track("dashboard", time.Now(), &err)
	set, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	dash := insights.BuildDashboard(set.Cards, s.today(), s.config.ReapplyWindowDays)
	return &dash, nil
}

func (s *service) Reminders(ctx context.Context) (cards []models.CreditCard, err error) {
	defer s.track("reminders", time.Now(), &err)
	set, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return insights.WeeklyReminders(set.Cards, s.today()), nil
}

func (s *service) Catalog(ctx context.Context) (entries []catalog.Entry, err error) {
	defer s.track("catalog", time.Now(), &err)
	entries, err = s.catalog.Entries()
	if err != nil {
		return nil, domainerrors.IO("scan image directory", err)
	}
	return entries, nil
}
