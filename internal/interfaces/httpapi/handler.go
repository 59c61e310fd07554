package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/omarvega/rescuehq/internal/domain/character"
	"github.com/omarvega/rescuehq/internal/domain/team"
	"github.com/omarvega/rescuehq/internal/usecase"
)

type Handler struct {
	characterService *usecase.CharacterService
	teamService      *usecase.TeamService
	catalogService   *usecase.CatalogService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	characterService *usecase.CharacterService,
	teamService *usecase.TeamService,
	catalogService *usecase.CatalogService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		characterService: characterService,
		teamService:      teamService,
		catalogService:   catalogService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

type characterDTO struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	URL          string      `json:"url,omitempty"`
	Strength     int         `json:"strength"`
	Intelligence int         `json:"intelligence"`
	Speed        int         `json:"speed"`
	Team         *teamRefDTO `json:"team,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}

type teamRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamDTO struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Members   []characterDTO `json:"members"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

type teamStatisticsDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	MemberCount int     `json:"memberCount"`
	Strongest   *string `json:"strongest"`
	Smartest    *string `json:"smartest"`
	Fastest     *string `json:"fastest"`
}

type catalogHeroDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

func characterDetailsToDTO(details usecase.CharacterDetails) characterDTO {
	dto := characterToDTO(details.Character)
	if details.Team != nil {
		dto.Team = &teamRefDTO{ID: details.Team.ID, Name: details.Team.Name}
	}
	return dto
}

func characterToDTO(c character.Character) characterDTO {
	return characterDTO{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		URL:          c.URL,
		Strength:     c.Strength,
		Intelligence: c.Intelligence,
		Speed:        c.Speed,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func teamToDTO(t team.Team) teamDTO {
	members := make([]characterDTO, 0, len(t.Members))
	for _, member := range t.Members {
		members = append(members, characterToDTO(member))
	}

	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		Members:   members,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func statisticsToDTO(stats team.Statistics) teamStatisticsDTO {
	return teamStatisticsDTO{
		ID:          stats.TeamID,
		Name:        stats.Name,
		MemberCount: stats.MemberCount,
		Strongest:   stats.Strongest,
		Smartest:    stats.Smartest,
		Fastest:     stats.Fastest,
	}
}

func catalogHeroToDTO(hero usecase.CatalogHero) catalogHeroDTO {
	return catalogHeroDTO{
		ID:          hero.ExternalID,
		Name:        hero.Name,
		Description: hero.Description,
		Thumbnail:   hero.ThumbnailURL,
	}
}
