package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"

	"github.com/studentnewspaper/imagemage/internal/domain"
	"github.com/studentnewspaper/imagemage/internal/http-server/handler/image/dto"
	image_uc "github.com/studentnewspaper/imagemage/internal/usecase/image"
)

const cacheControl = "public, max-age=31536000, immutable"

type ImageHandler struct {
	usecase  imageUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewImageHandler(usecase imageUsecase, logger *zlog.Zerolog) *ImageHandler {
	return &ImageHandler{
		usecase:  usecase,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetImage serves GET /image/*: a resized, optionally cropped rendition of
// the requested file at full encoder quality.
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	req, err := parseImageQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := domain.NegotiateFormat(domain.ImageFormat(req.Format), r.Header.Get("Accept"))
	opts := domain.FullImageOptions(dimensionValue(req.Width), dimensionValue(req.Height), format, domain.CropStrategy(req.Strategy))

	h.render(w, r, opts)
}

// GetPreview serves GET /preview/*: a small, blurred, heavily compressed
// placeholder for progressive loading.
func (h *ImageHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	req, err := parsePreviewQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := domain.NegotiateFormat(domain.ImageFormat(req.Format), r.Header.Get("Accept"))
	opts := domain.PreviewOptions(dimensionValue(req.Width), dimensionValue(req.Height), format)

	h.render(w, r, opts)
}

func (h *ImageHandler) render(w http.ResponseWriter, r *http.Request, opts domain.RenderOptions) {
	relativePath := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(relativePath); err == nil {
		relativePath = unescaped
	}

	rendered, err := h.usecase.Render(r.Context(), relativePath, opts)
	if err != nil {
		h.handleRenderError(w, r, err)
		return
	}

	// Header contract: metadata is written strictly before any body byte.
	w.Header().Set("Content-Type", rendered.MimeType())
	w.Header().Set("Cache-Control", cacheControl)
	// Add, not Set: the CORS layer may already have put Origin in Vary.
	w.Header().Add("Vary", "Accept")

	if err := h.usecase.Encode(w, rendered); err != nil {
		// Headers are already on the wire; a partial body is all the
		// client gets.
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to stream image")
	}
}

func (h *ImageHandler) handleRenderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, image_uc.ErrBadPath):
		http.Error(w, "Bad path", http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn().Str("path", r.URL.Path).Msg("Request cancelled")
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to render image")
		http.Error(w, "Failed to process image", http.StatusInternalServerError)
	}
}

func parseImageQuery(q url.Values) (*dto.ImageRequest, error) {
	width, err := parseDimension(q.Get("w"), "w")
	if err != nil {
		return nil, err
	}

	height, err := parseDimension(q.Get("h"), "h")
	if err != nil {
		return nil, err
	}

	return &dto.ImageRequest{
		Width:    width,
		Height:   height,
		Format:   q.Get("f"),
		Strategy: q.Get("strat"),
	}, nil
}

func parsePreviewQuery(q url.Values) (*dto.PreviewRequest, error) {
	width, err := parseDimension(q.Get("w"), "w")
	if err != nil {
		return nil, err
	}

	height, err := parseDimension(q.Get("h"), "h")
	if err != nil {
		return nil, err
	}

	return &dto.PreviewRequest{
		Width:  width,
		Height: height,
		Format: q.Get("f"),
	}, nil
}

// parseDimension keeps "omitted" and "supplied" apart: an absent parameter
// is nil, while any supplied value, zero included, is returned for the
// range checks to judge.
func parseDimension(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be an integer", name)
	}
	return &value, nil
}

func dimensionValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
