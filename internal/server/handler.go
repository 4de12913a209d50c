package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"resumeparse/internal/extract"
	"resumeparse/internal/observability"
	"resumeparse/internal/parser"
	"resumeparse/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// createParseResumeHandler wraps the parse endpoint with observability
func (s *Server) createParseResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErrorEnvelope(w, "Method not allowed", nil, http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("resumeparse.api")
		ctx, span := tracer.Start(ctx, "api.parse_resume")
		defer span.End()

		req, ok := s.parseFileURLRequest(w, r, span)
		if !ok {
			return
		}

		span.SetAttributes(attribute.String("operation", "parse_resume"))

		pages, ok := s.fetchDocumentPages(ctx, w, req.FileURL, span)
		if !ok {
			return
		}

		metrics := om.GetMetrics()
		stats := parser.Stats(pages)
		var record types.ResumeRecord
		err := metrics.TrackPipelineOperation(ctx, "parse_resume", func(ctx context.Context) *observability.PipelineOperationResult {
			result, pipelineErr := s.Pipeline.ExtractPages(pages)
			record = result
			return &observability.PipelineOperationResult{
				Error: pipelineErr,
				Stats: &stats,
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "pipeline"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om,
				attribute.String("error", err.Error()))
			writeErrorEnvelope(w, err.Error(), nil, http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("document.pages", stats.Pages),
			attribute.Int("document.words", stats.Words))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.experience_entries", len(record.Experience)),
			attribute.Int("response.education_entries", len(record.Education)),
		)

		writeSuccessEnvelope(w, record, "Resume parsed successfully.")
	}
}

// createIsReadableHandler wraps the readability endpoint with observability
func (s *Server) createIsReadableHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErrorEnvelope(w, "Method not allowed", nil, http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("resumeparse.api")
		ctx, span := tracer.Start(ctx, "api.is_readable")
		defer span.End()

		req, ok := s.parseFileURLRequest(w, r, span)
		if !ok {
			return
		}

		span.SetAttributes(attribute.String("operation", "is_readable"))

		pages, ok := s.fetchDocumentPages(ctx, w, req.FileURL, span)
		if !ok {
			return
		}

		metrics := om.GetMetrics()
		stats := parser.Stats(pages)
		var check types.DocumentCheck
		_ = metrics.TrackPipelineOperation(ctx, "is_readable", func(ctx context.Context) *observability.PipelineOperationResult {
			check = s.Pipeline.CheckPages(pages)
			return &observability.PipelineOperationResult{Stats: &stats}
		}, om)

		result := ReadabilityResult{
			IsReadable:   check.IsReadable,
			ATSCompliant: check.Compliance.Compliant,
			Fields:       check.Compliance.Fields,
		}

		metrics.RecordBusinessMetric(ctx, "document_checked", true, om,
			attribute.Bool("readable", check.IsReadable),
			attribute.Bool("ats_compliant", check.Compliance.Compliant))

		span.SetAttributes(
			attribute.Bool("document.readable", check.IsReadable),
			attribute.Bool("document.ats_compliant", check.Compliance.Compliant),
			attribute.Int("document.words", check.WordCount),
		)

		if !check.IsReadable {
			message := fmt.Sprintf(
				"PDF is not readable (might be scanned image or contains less than %d words)",
				s.AppConfig.Pipeline.MinWords)
			writeErrorEnvelope(w, message, result, http.StatusBadRequest)
			return
		}

		writeSuccessEnvelope(w, result, "PDF readability and ATS compliance check completed.")
	}
}

// parseFileURLRequest decodes and validates the shared request body.
// Writes the error envelope itself and returns ok=false on failure.
func (s *Server) parseFileURLRequest(w http.ResponseWriter, r *http.Request, span oteltrace.Span) (ParseRequest, bool) {
	var req ParseRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorEnvelope(w, err.Error(), nil, http.StatusBadRequest)
		return req, false
	}

	if strings.TrimSpace(req.FileURL) == "" {
		err := fmt.Errorf("missing file_url")
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorEnvelope(w, "Missing 'file_url' in request body", nil, http.StatusBadRequest)
		return req, false
	}

	return req, true
}

// fetchDocumentPages downloads the document and extracts per-page text.
// Writes the error envelope itself and returns ok=false on failure.
func (s *Server) fetchDocumentPages(ctx context.Context, w http.ResponseWriter, fileURL string, span oteltrace.Span) ([]string, bool) {
	data, err := s.Fetcher.Fetch(ctx, fileURL)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "fetch"))
		writeErrorEnvelope(w, err.Error(), nil, http.StatusInternalServerError)
		return nil, false
	}

	pages, err := extract.PageTexts(data)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "extraction"))
		writeErrorEnvelope(w, err.Error(), nil, http.StatusInternalServerError)
		return nil, false
	}

	return pages, true
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
