package feed

import (
	"context"

	"github.com/samvad-hq/mealdb/pkg/publishers"
	"github.com/samvad-hq/mealdb/pkg/sources"
)

// Enricher decorates events before they are published.
type Enricher interface {
	Enrich(ctx context.Context, src sources.Source, events []publishers.Event) []publishers.Event
}

// EventPublisher publishes events downstream and reports how many sinks accepted each.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers delivered meal ids.
type Deduper interface {
	SeenMeal(id string) (bool, error)
	MarkMeal(id string) error
}
