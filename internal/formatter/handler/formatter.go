package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"phonefmt/internal/formatter/service"
	apperrors "phonefmt/pkg/errors"
	httputil "phonefmt/pkg/http"
	"phonefmt/pkg/logger"
	"phonefmt/pkg/model"
)

const (
	routeFormat      = "/api/v1/phone-numbers/format"
	routeFormatBatch = "/api/v1/phone-numbers/format/batch"
)

type FormatterHandler struct {
	service service.FormatterService
	log     *logger.Logger
}

func NewFormatterHandler(service service.FormatterService, log *logger.Logger) *FormatterHandler {
	return &FormatterHandler{
		service: service,
		log:     log,
	}
}

func (h *FormatterHandler) Format(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.FormatRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Format", err)
		return
	}

	res, err := h.service.Format(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Format", err)
		return
	}

	if err := httputil.WriteSuccess(w, res); err != nil {
		h.log.Error("failed to write success response", "handler", "Format", "operation", "WriteSuccess", "error", err)
	}
}

// FormatQuery serves GET ?number=...&home_region=... and is always strict.
func (h *FormatterHandler) FormatQuery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	if !query.Has("number") {
		h.writeError(w, "FormatQuery", apperrors.InvalidInput("number query parameter is required"))
		return
	}

	req := model.FormatRequest{
		Number:     query.Get("number"),
		HomeRegion: query.Get("home_region"),
		Timezone:   query.Get("timezone"),
		Strict:     true,
	}

	res, err := h.service.Format(r.Context(), &req)
	if err != nil {
		h.writeError(w, "FormatQuery", err)
		return
	}

	if err := httputil.WriteSuccess(w, res); err != nil {
		h.log.Error("failed to write success response", "handler", "FormatQuery", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FormatterHandler) FormatBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BatchFormatRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "FormatBatch", err)
		return
	}

	results, failed, err := h.service.FormatBatch(r.Context(), &req)
	if err != nil {
		h.writeError(w, "FormatBatch", err)
		return
	}

	if err := httputil.WriteBatch(w, results, len(results), failed); err != nil {
		h.log.Error("failed to write batch response", "handler", "FormatBatch", "operation", "WriteBatch", "error", err)
	}
}

func (h *FormatterHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *FormatterHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(routeFormat, h.Format)
	router.GET(routeFormat, h.FormatQuery)
	router.POST(routeFormatBatch, h.FormatBatch)
}
