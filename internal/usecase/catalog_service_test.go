package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/omarvega/rescuehq/internal/platform/cache"
)

type fakeCatalogProvider struct {
	heroes      []ExternalHero
	hero        ExternalHero
	stories     []ExternalStory
	searchErr   error
	fetchErr    error
	lastPrefix  string
	searchCalls int
	lastHeroIDs []int64
}

func (f *fakeCatalogProvider) SearchHeroesByNamePrefix(_ context.Context, prefix string) ([]ExternalHero, error) {
	f.lastPrefix = prefix
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.heroes, nil
}

func (f *fakeCatalogProvider) FetchHeroByID(_ context.Context, heroID int64) (ExternalHero, error) {
	f.lastHeroIDs = append(f.lastHeroIDs, heroID)
	if f.fetchErr != nil {
		return ExternalHero{}, f.fetchErr
	}
	return f.hero, nil
}

func (f *fakeCatalogProvider) FetchHeroStories(_ context.Context, heroID int64) ([]ExternalStory, error) {
	f.lastHeroIDs = append(f.lastHeroIDs, heroID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.stories, nil
}

type fakeRenderer struct {
	lastHTML []byte
	err      error
}

func (f *fakeRenderer) RenderHTML(_ context.Context, html []byte) ([]byte, error) {
	f.lastHTML = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func newCatalogService(provider *fakeCatalogProvider, renderer *fakeRenderer) *CatalogService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalogService(provider, renderer, nil, logger)
}

func TestCatalogService_SearchAvengersFiltersBySeries(t *testing.T) {
	provider := &fakeCatalogProvider{
		heroes: []ExternalHero{
			{ExternalID: 1, Name: "Iron Man", SeriesNames: []string{"Avengers Assemble", "Iron Man Vol 1"}},
			{ExternalID: 2, Name: "Iron Fist", SeriesNames: []string{"Heroes for Hire"}},
			{ExternalID: 3, Name: "Ironheart", SeriesNames: []string{"West Coast Avengers"}},
		},
	}
	service := newCatalogService(provider, &fakeRenderer{})

	items, err := service.SearchAvengers(t.Context(), " Iron ")
	if err != nil {
		t.Fatalf("search avengers failed: %v", err)
	}
	if provider.lastPrefix != "Iron" {
		t.Fatalf("expected trimmed prefix, got %q", provider.lastPrefix)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 avengers, got %d", len(items))
	}
	if items[0].ExternalID != 1 || items[1].ExternalID != 3 {
		t.Fatalf("expected heroes 1 and 3 in order, got %+v", items)
	}
}

func TestCatalogService_SearchAvengersRejectsShortPrefix(t *testing.T) {
	service := newCatalogService(&fakeCatalogProvider{}, &fakeRenderer{})

	// The bound counts runes, not bytes: "ロキ" is two characters even
	// though it is six bytes.
	for _, prefix := range []string{"", "Ir", "abc", "  ab  ", "ロキ"} {
		if _, err := service.SearchAvengers(t.Context(), prefix); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("prefix %q: expected ErrInvalidInput, got %v", prefix, err)
		}
	}

	if _, err := service.SearchAvengers(t.Context(), "ソーニャ"); err != nil {
		t.Fatalf("four-rune prefix rejected: %v", err)
	}
}

func TestCatalogService_SearchAvengersPropagatesProviderOutage(t *testing.T) {
	provider := &fakeCatalogProvider{
		searchErr: fmt.Errorf("%w: catalog is temporarily unavailable", ErrDependencyUnavailable),
	}
	service := newCatalogService(provider, &fakeRenderer{})

	if _, err := service.SearchAvengers(t.Context(), "Iron"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestCatalogService_GenerateThreatReport(t *testing.T) {
	stories := make([]ExternalStory, 0, 8)
	for i := 1; i <= 8; i++ {
		stories = append(stories, ExternalStory{ExternalID: int64(i), Title: fmt.Sprintf("Infinity Part %d", i)})
	}
	provider := &fakeCatalogProvider{
		hero: ExternalHero{
			ExternalID:   1009652,
			Name:         "Thanos",
			Description:  "The Mad Titan.",
			ThumbnailURL: "https://example.com/thanos.jpg",
		},
		stories: stories,
	}
	renderer := &fakeRenderer{}
	service := newCatalogService(provider, renderer)

	report, err := service.GenerateThreatReport(t.Context())
	if err != nil {
		t.Fatalf("generate threat report failed: %v", err)
	}

	if len(provider.lastHeroIDs) != 2 || provider.lastHeroIDs[0] != 1009652 || provider.lastHeroIDs[1] != 1009652 {
		t.Fatalf("expected hero and stories fetched for Thanos, got %v", provider.lastHeroIDs)
	}
	if len(report.Stories) != 5 {
		t.Fatalf("expected last 5 stories, got %d", len(report.Stories))
	}
	if report.Stories[0].Title != "Infinity Part 4" || report.Stories[4].Title != "Infinity Part 8" {
		t.Fatalf("expected trailing stories in order, got %+v", report.Stories)
	}
	if len(report.PDF) == 0 {
		t.Fatal("expected rendered pdf bytes")
	}

	for _, fragment := range []string{"<h2>Thanos</h2>", "<img src=\"https://example.com/thanos.jpg\"", "<li>Infinity Part 8</li>"} {
		if !bytes.Contains(renderer.lastHTML, []byte(fragment)) {
			t.Fatalf("expected html to contain %q, got %s", fragment, renderer.lastHTML)
		}
	}
	if bytes.Contains(renderer.lastHTML, []byte("Infinity Part 3")) {
		t.Fatal("expected older stories excluded from report")
	}
}

func TestCatalogService_SearchAvengersUsesCache(t *testing.T) {
	provider := &fakeCatalogProvider{
		heroes: []ExternalHero{{ExternalID: 1, Name: "Iron Man", SeriesNames: []string{"Avengers"}}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewCatalogService(provider, &fakeRenderer{}, cache.NewStore(time.Minute), logger)

	for range 3 {
		items, err := service.SearchAvengers(t.Context(), "Iron")
		if err != nil {
			t.Fatalf("search avengers failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected one hero, got %d", len(items))
		}
	}

	if provider.searchCalls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.searchCalls)
	}
}

func TestCatalogService_GenerateThreatReportRenderFailure(t *testing.T) {
	provider := &fakeCatalogProvider{
		hero:    ExternalHero{ExternalID: 1009652, Name: "Thanos"},
		stories: []ExternalStory{{ExternalID: 1, Title: "Endgame"}},
	}
	renderer := &fakeRenderer{err: fmt.Errorf("%w: renderer offline", ErrDependencyUnavailable)}
	service := newCatalogService(provider, renderer)

	if _, err := service.GenerateThreatReport(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
