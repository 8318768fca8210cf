package sources

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/samvad-hq/mealdb/pkg/mealdb"
)

// MealAPI is the part of *mealdb.Client the fetchers need.
type MealAPI interface {
	SearchByName(ctx context.Context, name string) ([]mealdb.Meal, error)
	SearchByLetter(ctx context.Context, letter string) ([]mealdb.Meal, error)
	GetByID(ctx context.Context, id int) (*mealdb.Meal, error)
	GetRandom(ctx context.Context) (*mealdb.Meal, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.MealSummary, error)
	FilterByArea(ctx context.Context, area string) ([]mealdb.MealSummary, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.MealSummary, error)
}

// Fetcher resolves a source into full meals. An empty result is not an error.
type Fetcher interface {
	Type() string
	Fetch(ctx context.Context, src Source) ([]mealdb.Meal, error)
}

// FetcherRegistry resolves the fetcher for a given source.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

type fetcherRegistry struct {
	mu     sync.RWMutex
	byType map[string]Fetcher
}

// NewFetcherRegistry indexes fetchers by their Type.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{byType: make(map[string]Fetcher, len(fetchers))}
	for _, f := range fetchers {
		if f == nil {
			continue
		}
		if key := strings.ToLower(strings.TrimSpace(f.Type())); key != "" {
			reg.byType[key] = f
		}
	}
	return reg
}

// FetcherFor selects the fetcher registered for the source type.
func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.byType[strings.ToLower(strings.TrimSpace(src.Type))]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.ID, src.Type)
}

// DefaultFetcherRegistry wires a fetcher for every supported source type.
func DefaultFetcherRegistry(api MealAPI) FetcherRegistry {
	return NewFetcherRegistry(
		&randomFetcher{api: api},
		&searchFetcher{typ: TypeSearch, search: api.SearchByName},
		&searchFetcher{typ: TypeLetter, search: api.SearchByLetter},
		&filterFetcher{typ: TypeCategory, api: api, filter: api.FilterByCategory},
		&filterFetcher{typ: TypeArea, api: api, filter: api.FilterByArea},
		&filterFetcher{typ: TypeIngredient, api: api, filter: api.FilterByIngredient},
	)
}

// randomFetcher draws Limit random meals, dropping repeats within one batch.
type randomFetcher struct {
	api MealAPI
}

func (f *randomFetcher) Type() string { return TypeRandom }

func (f *randomFetcher) Fetch(ctx context.Context, src Source) ([]mealdb.Meal, error) {
	seen := make(map[string]struct{}, src.Limit)
	out := make([]mealdb.Meal, 0, src.Limit)
	for i := 0; i < src.Limit; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		meal, err := f.api.GetRandom(ctx)
		if errors.Is(err, mealdb.ErrNoResults) {
			continue
		}
		if err != nil {
			return out, fmt.Errorf("random meal for source %s: %w", src.ID, err)
		}
		if _, dup := seen[meal.ID]; dup {
			continue
		}
		seen[meal.ID] = struct{}{}
		out = append(out, *meal)
	}
	return out, nil
}

type searchFetcher struct {
	typ    string
	search func(context.Context, string) ([]mealdb.Meal, error)
}

func (f *searchFetcher) Type() string { return f.typ }

func (f *searchFetcher) Fetch(ctx context.Context, src Source) ([]mealdb.Meal, error) {
	meals, err := f.search(ctx, src.Value)
	if errors.Is(err, mealdb.ErrNoResults) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q for source %s: %w", f.typ, src.Value, src.ID, err)
	}
	return limit(meals, src.Limit), nil
}

// filterFetcher narrows by a filter endpoint then looks each summary up by id,
// since filter results carry no recipe details.
type filterFetcher struct {
	typ    string
	api    MealAPI
	filter func(context.Context, string) ([]mealdb.MealSummary, error)
}

func (f *filterFetcher) Type() string { return f.typ }

func (f *filterFetcher) Fetch(ctx context.Context, src Source) ([]mealdb.Meal, error) {
	summaries, err := f.filter(ctx, src.Value)
	if errors.Is(err, mealdb.ErrNoResults) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filter %s=%q for source %s: %w", f.typ, src.Value, src.ID, err)
	}

	summaries = limit(summaries, src.Limit)
	out := make([]mealdb.Meal, 0, len(summaries))
	for _, s := range summaries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		id, err := strconv.Atoi(strings.TrimSpace(s.ID))
		if err != nil {
			return out, fmt.Errorf("source %s: meal %q has non-numeric id", src.ID, s.ID)
		}
		meal, err := f.api.GetByID(ctx, id)
		if errors.Is(err, mealdb.ErrNoResults) {
			continue
		}
		if err != nil {
			return out, fmt.Errorf("lookup meal %d for source %s: %w", id, src.ID, err)
		}
		out = append(out, *meal)
	}
	return out, nil
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
