package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/mealdb/internal/logger"
	"github.com/samvad-hq/mealdb/pkg/httpclient"
	"github.com/samvad-hq/mealdb/pkg/publishers"
	"github.com/samvad-hq/mealdb/pkg/sources"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// PageEnricher fetches each meal's strSource page and attaches its og: metadata.
type PageEnricher struct {
	client httpclient.Client
	log    logger.Logger
}

// NewPageEnricher constructs an enricher with the provided HTTP client (or default).
func NewPageEnricher(client httpclient.Client, log logger.Logger) *PageEnricher {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.Options{})
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &PageEnricher{client: client, log: log}
}

// Enrich visits source pages one at a time, pausing src.RequestDelay between
// fetches. Failed pages leave the event untouched. On cancellation the events
// handled so far are returned.
func (e *PageEnricher) Enrich(ctx context.Context, src sources.Source, events []publishers.Event) []publishers.Event {
	delay := src.RequestDelay()
	out := append([]publishers.Event(nil), events...)

	fetched := 0
	for i, evt := range events {
		select {
		case <-ctx.Done():
			return out[:i]
		default:
		}

		pageURL := strings.TrimSpace(evt.Meal.Source)
		if pageURL == "" {
			continue
		}

		if fetched > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out[:i]
			case <-timer.C:
			}
		}
		fetched++

		page, err := e.fetchPage(ctx, pageURL)
		if err != nil {
			e.log.WarnObj("source page scrape failed", "enrich_error", map[string]any{
				"source_id": src.ID,
				"meal_id":   evt.Meal.ID,
				"url":       pageURL,
				"error":     err.Error(),
			})
			continue
		}
		out[i].SourcePage = page
	}
	return out
}

func (e *PageEnricher) fetchPage(ctx context.Context, pageURL string) (*publishers.SourcePage, error) {
	resp, err := e.client.Get(ctx, pageURL, map[string]string{"Accept": "text/html"})
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return nil, err
	}
	meta.URL = pageURL
	meta.ImageURL = resolveURL(meta.ImageURL, pageURL)
	return &meta, nil
}

func parseMeta(body []byte) (publishers.SourcePage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return publishers.SourcePage{}, fmt.Errorf("parse html: %w", err)
	}

	content := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return publishers.SourcePage{
		Title: firstNonEmpty(
			content(`meta[property="og:title"]`),
			doc.Find("title").First().Text(),
		),
		Description: firstNonEmpty(
			content(`meta[property="og:description"]`),
			content(`meta[name="description"]`),
		),
		ImageURL: content(`meta[property="og:image"]`),
	}, nil
}

// resolveURL makes ref absolute against base; unparsable input is returned as is.
func resolveURL(ref, base string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
