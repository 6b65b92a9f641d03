package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/nexus-a11y/idgen"
	"github.com/hazyhaar/nexus-a11y/kit"
	"github.com/hazyhaar/nexus-a11y/shield"
	"github.com/hazyhaar/nexus-a11y/srpreview"
)

// Handler returns the inspector HTTP API behind the shield stack.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack(s.config.MaxBodyBytes) {
		r.Use(mw)
	}
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the inspector routes on r.
//
//	GET  /health
//	POST /api/segments   one node  → Result
//	POST /api/preview    one node  → {id, preview}; ?joiner= overrides
//	POST /api/batch      node array → []Result
//	POST /api/render     one node  → text/html fragment
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/segments", func(w http.ResponseWriter, r *http.Request) {
		node, err := readNode(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Inspect(s.requestContext(r), node))
	})

	r.Post("/api/preview", func(w http.ResponseWriter, r *http.Request) {
		node, err := readNode(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var opts []srpreview.PreviewOption
		if q := r.URL.Query(); q.Has("joiner") {
			opts = append(opts, srpreview.WithJoiner(q.Get("joiner")))
		}
		res := s.Inspect(s.requestContext(r), node, opts...)
		writeJSON(w, http.StatusOK, &previewResponse{ID: res.ID, Preview: res.Preview})
	})

	r.Post("/api/batch", func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		nodes, err := DecodeNodes(data, FormatForContentType(r.Header.Get("Content-Type")))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, s.InspectBatch(s.requestContext(r), nodes))
	})

	r.Post("/api/render", func(w http.ResponseWriter, r *http.Request) {
		node, err := readNode(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, s.RenderHTML(s.requestContext(r), node))
	})
}

// requestContext tags the request with transport and a request ID derived
// from the shield trace ID.
func (s *Service) requestContext(r *http.Request) context.Context {
	ctx := kit.WithTransport(r.Context(), "http")
	id := kit.GetTraceID(ctx)
	if id == "" {
		id = idgen.New()
	}
	return kit.WithRequestID(ctx, "insp_"+id)
}

func readNode(r *http.Request) (any, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return DecodeNode(data, FormatForContentType(r.Header.Get("Content-Type")))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusBadRequest
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		code = http.StatusRequestEntityTooLarge
	}
	shield.GetLogger(r.Context()).Warn("inspector: bad request", "status", code, "error", err)
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
