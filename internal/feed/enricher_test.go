package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/mealdb/pkg/httpclient"
	"github.com/samvad-hq/mealdb/pkg/mealdb"
	"github.com/samvad-hq/mealdb/pkg/publishers"
	"github.com/samvad-hq/mealdb/pkg/sources"
)

type stubHTTPResponse struct {
	body       []byte
	statusCode int
}

func (s stubHTTPResponse) Body() []byte    { return s.body }
func (s stubHTTPResponse) StatusCode() int { return s.statusCode }

// stubHTTPClient serves pages by URL and records requested URLs.
type stubHTTPClient struct {
	pages    map[string]stubHTTPResponse
	requests []string
}

func (s *stubHTTPClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	s.requests = append(s.requests, url)
	page, ok := s.pages[url]
	if !ok {
		return nil, errors.New("unreachable")
	}
	return page, nil
}

const recipePage = `
<html>
  <head>
    <title>Fallback</title>
    <meta property="og:title" content="Spicy Arrabiata Penne">
    <meta name="description" content="Quick weeknight pasta">
    <meta property="og:image" content="/img/penne.jpg">
  </head>
</html>`

func TestParseMetaPrefersOGTags(t *testing.T) {
	meta, err := parseMeta([]byte(recipePage))
	if err != nil {
		t.Fatalf("parseMeta: %v", err)
	}
	if meta.Title != "Spicy Arrabiata Penne" || meta.Description != "Quick weeknight pasta" || meta.ImageURL != "/img/penne.jpg" {
		t.Fatalf("unexpected meta %#v", meta)
	}
}

func TestResolveURLHandlesRelative(t *testing.T) {
	if got := resolveURL("/img.png", "https://example.com/recipes/1"); got != "https://example.com/img.png" {
		t.Fatalf("resolveURL got %q", got)
	}
	if got := resolveURL("https://cdn.example.com/a.png", "https://example.com"); got != "https://cdn.example.com/a.png" {
		t.Fatalf("absolute url changed: %q", got)
	}
	if got := resolveURL("", "https://example.com"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestPageEnricherAttachesSourcePage(t *testing.T) {
	client := &stubHTTPClient{pages: map[string]stubHTTPResponse{
		"https://recipes.example.com/penne": {body: []byte(recipePage), statusCode: 200},
		"https://recipes.example.com/gone":  {statusCode: 404},
	}}
	enricher := NewPageEnricher(client, nil)

	events := []publishers.Event{
		{Meal: mealdb.Meal{ID: "1", Source: "https://recipes.example.com/penne"}},
		{Meal: mealdb.Meal{ID: "2"}},
		{Meal: mealdb.Meal{ID: "3", Source: "https://recipes.example.com/gone"}},
	}
	got := enricher.Enrich(context.Background(), sources.Source{ID: "s", RequestDelayMs: 1}, events)

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	page := got[0].SourcePage
	if page == nil || page.ImageURL != "https://recipes.example.com/img/penne.jpg" || page.URL != "https://recipes.example.com/penne" {
		t.Fatalf("unexpected source page %+v", page)
	}
	if got[1].SourcePage != nil || got[2].SourcePage != nil {
		t.Fatalf("expected meals without a usable page to stay untouched")
	}
	if len(client.requests) != 2 {
		t.Fatalf("expected 2 page fetches, got %v", client.requests)
	}
	if events[0].SourcePage != nil {
		t.Fatal("input events must not be mutated")
	}
}

func TestPageEnricherStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enricher := NewPageEnricher(&stubHTTPClient{}, nil)
	got := enricher.Enrich(ctx, sources.Source{ID: "s"}, []publishers.Event{{Meal: mealdb.Meal{ID: "1", Source: "https://x"}}})
	if len(got) != 0 {
		t.Fatalf("expected no events after cancellation, got %d", len(got))
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", " ", " foo ", "bar"); got != "foo" {
		t.Fatalf("firstNonEmpty returned %q", got)
	}
}
