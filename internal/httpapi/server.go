package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transcribed/internal/pipeline"
	"transcribed/internal/registry"
	"transcribed/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Transcribe(ctx context.Context, up pipeline.Upload, language string) (pipeline.Artifact, error)
	ConvertAudio(ctx context.Context, up pipeline.Upload, outputFormat string) (pipeline.Artifact, error)
	Status() types.StatusResponse
	Formats() types.FormatsResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", handleTranscribe(svc))
		r.Post("/convert-audio", handleConvertAudio(svc))

		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Status())
		})

		r.Get("/formats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Formats())
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleTranscribe serves POST /api/convert: multipart upload in, PDF out.
//
//	audio_file  required  the audio upload
//	language    optional  language selector, defaults to "auto"
func handleTranscribe(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		up, ok := readUpload(w, r)
		if !ok {
			return
		}
		defer up.Remove()

		language := r.FormValue("language")
		if language == "" {
			language = registry.LanguageAuto
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		logStart(r, lvl, "transcribe start", "language", language)

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		art, err := svc.Transcribe(ctx, up, language)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := writeServiceError(w, err)
			logEnd(r, lvl, "transcribe end", status, start, err)
			return
		}
		writeArtifact(w, art)
		logEnd(r, lvl, "transcribe end", http.StatusOK, start, nil)
	}
}

// handleConvertAudio serves POST /api/convert-audio: multipart upload in,
// converted audio out.
//
//	audio_file     required  the audio upload
//	output_format  required  target container/codec, e.g. "wav"
func handleConvertAudio(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		up, ok := readUpload(w, r)
		if !ok {
			return
		}
		defer up.Remove()

		format := r.FormValue("output_format")
		if format == "" {
			writeJSONError(w, http.StatusBadRequest, "output_format is required")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		logStart(r, lvl, "convert start", "output_format", format)

		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		art, err := svc.ConvertAudio(ctx, up, format)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := writeServiceError(w, err)
			logEnd(r, lvl, "convert end", status, start, err)
			return
		}
		writeArtifact(w, art)
		logEnd(r, lvl, "convert end", http.StatusOK, start, nil)
	}
}

// readUpload parses the multipart form and spools the audio_file part to the
// upload temp dir. On failure it writes the error response and returns ok=false.
func readUpload(w http.ResponseWriter, r *http.Request) (pipeline.Upload, bool) {
	// Cap the whole body: the file itself plus a little multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return pipeline.Upload{}, false
	}
	file, hdr, err := r.FormFile("audio_file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "audio_file is required")
		return pipeline.Upload{}, false
	}
	defer file.Close()

	up, err := pipeline.SaveUpload(uploadTempDir, hdr.Filename, file)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return pipeline.Upload{}, false
	}
	return up, true
}

// writeArtifact sends the result bytes as a file download.
func writeArtifact(w http.ResponseWriter, art pipeline.Artifact) {
	w.Header().Set("Content-Type", art.MIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+art.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Bytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(art.Bytes)
}
