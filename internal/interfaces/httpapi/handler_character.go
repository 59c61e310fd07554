package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/omarvega/rescuehq/internal/usecase"
)

type characterWriteRequest struct {
	Name         string `json:"name" validate:"required,max=50"`
	Description  string `json:"description"`
	URL          string `json:"url" validate:"omitempty,url"`
	Strength     int    `json:"strength" validate:"min=0,max=10"`
	Intelligence int    `json:"intelligence" validate:"min=0,max=10"`
	Speed        int    `json:"speed" validate:"min=0,max=10"`
}

type assignTeamRequest struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
}

func (h *Handler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCharacters")
	defer span.End()

	characters, err := h.characterService.ListCharacters(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list characters failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]characterDTO, 0, len(characters))
	for _, details := range characters {
		items = append(items, characterDetailsToDTO(details))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCharacter")
	defer span.End()

	id, err := pathID(r, "characterID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.characterService.GetCharacter(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get character failed", "character_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, characterDetailsToDTO(details))
}

func (h *Handler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCharacter")
	defer span.End()

	var req characterWriteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.characterService.CreateCharacter(ctx, usecase.CharacterInput{
		Name:         req.Name,
		Description:  req.Description,
		URL:          req.URL,
		Strength:     req.Strength,
		Intelligence: req.Intelligence,
		Speed:        req.Speed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create character failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, characterToDTO(created))
}

func (h *Handler) EditCharacter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditCharacter")
	defer span.End()

	id, err := pathID(r, "characterID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req characterWriteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.characterService.EditCharacter(ctx, id, usecase.CharacterInput{
		Name:         req.Name,
		Description:  req.Description,
		URL:          req.URL,
		Strength:     req.Strength,
		Intelligence: req.Intelligence,
		Speed:        req.Speed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "edit character failed", "character_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, characterToDTO(updated))
}

func (h *Handler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCharacter")
	defer span.End()

	id, err := pathID(r, "characterID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.characterService.DeleteCharacter(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete character failed", "character_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AssignCharacterToTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignCharacterToTeam")
	defer span.End()

	id, err := pathID(r, "characterID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.characterService.AssignToTeam(ctx, id, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign character to team failed", "character_id", id, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, characterDetailsToDTO(details))
}
