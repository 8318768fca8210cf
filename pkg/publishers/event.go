package publishers

import (
	"time"

	"github.com/samvad-hq/mealdb/pkg/mealdb"
)

// Event represents the payload published downstream.
type Event struct {
	SourceID    string      `json:"source_id"`
	SourceName  string      `json:"source_name"`
	Meal        mealdb.Meal `json:"meal"`
	SourcePage  *SourcePage `json:"source_page,omitempty"`
	CollectedAt time.Time   `json:"collected_at"`
}

// SourcePage is metadata scraped from the recipe page a meal links to.
type SourcePage struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// NewEvent constructs an Event for the given source + meal.
func NewEvent(sourceID, sourceName string, meal mealdb.Meal) Event {
	return Event{
		SourceID:    sourceID,
		SourceName:  sourceName,
		Meal:        meal,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached by the queue-based publishers.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"source_id": e.SourceID,
		"meal_id":   e.Meal.ID,
	}
}
