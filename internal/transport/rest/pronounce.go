package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/pronounce/internal/domain"
	"github.com/heartmarshall/pronounce/internal/service/pronunciation"
)

type resolver interface {
	Resolve(ctx context.Context, word string) domain.Resolution
}

// PronounceHandler serves GET /api/pronounce?word=.
type PronounceHandler struct {
	svc          resolver
	cacheControl string
	log          *slog.Logger
}

// NewPronounceHandler creates a PronounceHandler. Successful lookups are
// cacheable by browsers and CDNs for cacheMaxAge.
func NewPronounceHandler(svc resolver, cacheMaxAge time.Duration, logger *slog.Logger) *PronounceHandler {
	return &PronounceHandler{
		svc:          svc,
		cacheControl: "public, max-age=" + strconv.Itoa(int(cacheMaxAge.Seconds())),
		log:          logger.With("handler", "pronounce"),
	}
}

type pronounceResponse struct {
	Word     string   `json:"word"`
	Tried    []string `json:"tried"`
	Source   string   `json:"source"`
	File     string   `json:"file"`
	URL      string   `json:"url"`
	FileHost string   `json:"fileHost"`
}

type notFoundResponse struct {
	Word  string   `json:"word"`
	Tried []string `json:"tried"`
	Error string   `json:"error"`
}

// ServeHTTP resolves the word query parameter.
func (h *PronounceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Resolve(r.Context(), r.URL.Query().Get("word"))

	switch res.Status {
	case domain.StatusFound:
		h.setCacheHeaders(w)
		writeJSON(w, http.StatusOK, pronounceResponse{
			Word:     res.Word,
			Tried:    res.Tried,
			Source:   res.Source,
			File:     res.Audio.Filename,
			URL:      res.Audio.URL,
			FileHost: res.Audio.HostSource.Name,
		})

	case domain.StatusNotFound:
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusNotFound, notFoundResponse{
			Word:  res.Word,
			Tried: res.Tried,
			Error: pronunciation.NotFoundMessage,
		})

	case domain.StatusInvalidInput:
		writeError(w, http.StatusBadRequest, "Missing ?word=")

	default:
		msg := "internal error"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		h.log.ErrorContext(r.Context(), "resolution failed",
			slog.String("word", res.Word),
			slog.String("error", msg),
		)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func (h *PronounceHandler) setCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", h.cacheControl)
	w.Header().Set("CDN-Cache-Control", h.cacheControl)
	w.Header().Set("Netlify-CDN-Cache-Control", h.cacheControl)
}
