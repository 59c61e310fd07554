package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/omarvega/rescuehq/internal/platform/cache"
)

// HeroCatalogProvider fetches hero records from the upstream comics
// catalog.
type HeroCatalogProvider interface {
	SearchHeroesByNamePrefix(ctx context.Context, prefix string) ([]ExternalHero, error)
	FetchHeroByID(ctx context.Context, heroID int64) (ExternalHero, error)
	FetchHeroStories(ctx context.Context, heroID int64) ([]ExternalStory, error)
}

// ReportRenderer converts an HTML document into a rendered PDF.
type ReportRenderer interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

type ExternalHero struct {
	ExternalID   int64
	Name         string
	Description  string
	ThumbnailURL string
	SeriesNames  []string
}

type ExternalStory struct {
	ExternalID int64
	Title      string
}

// CatalogHero is the trimmed search result returned to API consumers.
type CatalogHero struct {
	ExternalID   int64
	Name         string
	Description  string
	ThumbnailURL string
}

// HeroReport is the assembled report content before rendering.
type HeroReport struct {
	Hero    ExternalHero
	Stories []ExternalStory
	PDF     []byte
}

const (
	searchPrefixMinLength = 4
	avengersSeriesMarker  = "Avengers"

	// Upstream catalog identifier of Thanos, the subject of the default
	// threat report.
	thanosExternalID = 1009652

	reportStoryLimit = 5
)

type CatalogService struct {
	provider    HeroCatalogProvider
	renderer    ReportRenderer
	searchCache *cache.Store
	logger      *slog.Logger
}

// NewCatalogService builds the catalog facade. searchCache is optional;
// when set, identical prefix searches within the TTL are served from it.
func NewCatalogService(provider HeroCatalogProvider, renderer ReportRenderer, searchCache *cache.Store, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		provider:    provider,
		renderer:    renderer,
		searchCache: searchCache,
		logger:      logger,
	}
}

// SearchAvengers looks up catalog heroes whose name starts with the given
// prefix and keeps only those appearing in an Avengers series.
func (s *CatalogService) SearchAvengers(ctx context.Context, prefix string) ([]CatalogHero, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.SearchAvengers")
	defer span.End()

	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < searchPrefixMinLength {
		return nil, fmt.Errorf("%w: name prefix must be at least %d characters", ErrInvalidInput, searchPrefixMinLength)
	}

	heroes, err := s.searchHeroes(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("search heroes: %w", err)
	}

	items := make([]CatalogHero, 0, len(heroes))
	for _, hero := range heroes {
		if !appearsInAvengersSeries(hero.SeriesNames) {
			continue
		}
		items = append(items, CatalogHero{
			ExternalID:   hero.ExternalID,
			Name:         hero.Name,
			Description:  hero.Description,
			ThumbnailURL: hero.ThumbnailURL,
		})
	}

	s.logger.DebugContext(ctx, "catalog search completed",
		slog.String("prefix", prefix),
		slog.Int("matches", len(items)),
	)

	return items, nil
}

// GenerateThreatReport builds the Thanos dossier: hero profile plus the
// latest stories, rendered as a PDF.
func (s *CatalogService) GenerateThreatReport(ctx context.Context) (HeroReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GenerateThreatReport")
	defer span.End()

	hero, err := s.provider.FetchHeroByID(ctx, thanosExternalID)
	if err != nil {
		return HeroReport{}, fmt.Errorf("fetch hero: %w", err)
	}

	stories, err := s.provider.FetchHeroStories(ctx, thanosExternalID)
	if err != nil {
		return HeroReport{}, fmt.Errorf("fetch hero stories: %w", err)
	}
	stories = lastStories(stories, reportStoryLimit)

	html := BuildThreatReportHTML(hero, stories)
	pdf, err := s.renderer.RenderHTML(ctx, html)
	if err != nil {
		return HeroReport{}, fmt.Errorf("render report: %w", err)
	}

	s.logger.InfoContext(ctx, "threat report generated",
		slog.Int64("hero_id", hero.ExternalID),
		slog.Int("stories", len(stories)),
		slog.Int("pdf_bytes", len(pdf)),
	)

	return HeroReport{Hero: hero, Stories: stories, PDF: pdf}, nil
}

func (s *CatalogService) searchHeroes(ctx context.Context, prefix string) ([]ExternalHero, error) {
	if s.searchCache == nil {
		return s.provider.SearchHeroesByNamePrefix(ctx, prefix)
	}

	value, err := s.searchCache.GetOrLoad(ctx, "catalog:search:"+prefix, func(ctx context.Context) (any, error) {
		return s.provider.SearchHeroesByNamePrefix(ctx, prefix)
	})
	if err != nil {
		return nil, err
	}

	heroes, ok := value.([]ExternalHero)
	if !ok {
		return nil, fmt.Errorf("unexpected cached search value type %T", value)
	}

	return heroes, nil
}

func appearsInAvengersSeries(seriesNames []string) bool {
	for _, name := range seriesNames {
		if strings.Contains(name, avengersSeriesMarker) {
			return true
		}
	}

	return false
}

// lastStories keeps the trailing n entries, preserving order.
func lastStories(stories []ExternalStory, n int) []ExternalStory {
	if len(stories) <= n {
		return stories
	}

	return stories[len(stories)-n:]
}
