package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/mealdb/internal/logger"
	"github.com/samvad-hq/mealdb/pkg/mealdb"
	"github.com/samvad-hq/mealdb/pkg/publishers"
	"github.com/samvad-hq/mealdb/pkg/sources"
)

// Service runs feed passes across sources.
type Service struct {
	registry  sources.FetcherRegistry
	enricher  Enricher
	publisher EventPublisher
	store     Deduper
	log       logger.Logger
}

// NewService wires a feed service. enricher and store may be nil.
func NewService(reg sources.FetcherRegistry, enricher Enricher, pub EventPublisher, store Deduper, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		registry:  reg,
		enricher:  enricher,
		publisher: pub,
		store:     store,
		log:       log,
	}
}

// Run executes one pass over srcs. Per-source failures are joined; a
// cancelled context ends the pass without an error.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) error {
	if s == nil || s.registry == nil {
		return fmt.Errorf("feed service is not initialized")
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured for feed")
	}

	if errs := s.runAll(ctx, srcs); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, srcs []sources.Source) []error {
	var errs []error
	for _, src := range srcs {
		if ctx.Err() != nil {
			break
		}
		if err := s.runSource(ctx, src); err != nil {
			if ctx.Err() != nil {
				break
			}
			errs = append(errs, err)
			s.log.ErrorObj("source feed failed", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
		}
	}
	return errs
}

func (s *Service) runSource(ctx context.Context, src sources.Source) error {
	fetcher, err := s.registry.FetcherFor(src)
	if err != nil {
		return fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	meals, fetchErr := fetcher.Fetch(ctx, src)
	if fetchErr != nil && len(meals) == 0 {
		return fmt.Errorf("fetch source %s: %w", src.ID, fetchErr)
	}

	fresh := s.filterNewMeals(src, meals)
	events := make([]publishers.Event, 0, len(fresh))
	for _, m := range fresh {
		events = append(events, publishers.NewEvent(src.ID, src.Name, m))
	}
	if s.enricher != nil && len(events) > 0 {
		events = s.enricher.Enrich(ctx, src, events)
	}

	published, pubErr := s.publishEvents(ctx, events)

	s.log.InfoObj("source feed completed", "source_result", map[string]any{
		"source_id":       src.ID,
		"meals_fetched":   len(meals),
		"meals_new":       len(fresh),
		"meals_published": published,
	})

	if fetchErr != nil {
		pubErr = errors.Join(fmt.Errorf("fetch source %s (partial): %w", src.ID, fetchErr), pubErr)
	}
	return pubErr
}

// filterNewMeals drops meals the store already delivered. Lookup failures
// keep the meal so a broken store never silences the feed.
func (s *Service) filterNewMeals(src sources.Source, meals []mealdb.Meal) []mealdb.Meal {
	if s.store == nil {
		return meals
	}
	out := make([]mealdb.Meal, 0, len(meals))
	for _, m := range meals {
		seen, err := s.store.SeenMeal(m.ID)
		if err != nil {
			s.log.WarnObj("delivered lookup failed", "store_error", map[string]any{
				"source_id": src.ID,
				"meal_id":   m.ID,
				"error":     err.Error(),
			})
		}
		if !seen {
			out = append(out, m)
		}
	}
	return out
}

func (s *Service) publishEvents(ctx context.Context, events []publishers.Event) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, evt := range events {
		if ctx.Err() != nil {
			break
		}
		n, err := s.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish meal %s: %w", evt.Meal.ID, err))
		}
		if n == 0 {
			continue
		}
		published++
		if s.store != nil {
			if err := s.store.MarkMeal(evt.Meal.ID); err != nil {
				errs = append(errs, fmt.Errorf("mark meal %s: %w", evt.Meal.ID, err))
			}
		}
	}
	return published, errors.Join(errs...)
}
