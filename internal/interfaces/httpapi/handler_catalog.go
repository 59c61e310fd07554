package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) SearchAvengers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchAvengers")
	defer span.End()

	prefix := strings.TrimSpace(r.URL.Query().Get("nameStartsWith"))
	heroes, err := h.catalogService.SearchAvengers(ctx, prefix)
	if err != nil {
		h.logger.WarnContext(ctx, "search avengers failed", "prefix", prefix, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]catalogHeroDTO, 0, len(heroes))
	for _, hero := range heroes {
		items = append(items, catalogHeroToDTO(hero))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetThreatReport streams the rendered PDF directly instead of the JSON
// envelope the rest of the API uses.
func (h *Handler) GetThreatReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetThreatReport")
	defer span.End()

	report, err := h.catalogService.GenerateThreatReport(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "generate threat report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="threat-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(report.PDF)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.PDF)
}
