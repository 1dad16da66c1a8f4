package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/kiesman99/tokenizer/internal/api"
	"github.com/kiesman99/tokenizer/internal/tokenize"
	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/kiesman99/tokenizer/pkg/token"
)

// DefaultMaxUpload caps the size of an uploaded montage
const DefaultMaxUpload = 32 << 20

// Server implements api.ServerInterface
type Server struct {
	startTime time.Time
	version   string
	tokenizer *tokenize.Tokenizer
	maxUpload int64
	logger    *slog.Logger
}

// NewServer creates a new server instance
func NewServer(version string, tk *tokenize.Tokenizer, maxUpload int64, logger *slog.Logger) *Server {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		startTime: time.Now(),
		version:   version,
		tokenizer: tk,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	// Tokens with frames cannot be served without the assets directory
	statusCode := http.StatusOK
	if _, err := s.tokenizer.Frames().List(); err != nil {
		s.logger.Warn("frame assets unavailable", "error", err)
		response.Status = api.Unhealthy
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, statusCode, response)
}

// GetFrames lists the frames available to tokens
func (s *Server) GetFrames(w http.ResponseWriter, r *http.Request) {
	requestID := requestID(r)

	ids, err := s.tokenizer.Frames().List()
	if err != nil {
		s.logger.Error("listing frames", "error", err, "request_id", requestID)
		s.writeErrorResponse(w, http.StatusInternalServerError, api.CodeInternalError,
			"Frames could not be listed", &requestID, nil)
		return
	}
	if ids == nil {
		ids = []int{}
	}

	s.writeJSON(w, http.StatusOK, api.FramesResponse{Frames: ids})
}

// CreateToken turns the uploaded montage in the request body into a PNG token
func (s *Server) CreateToken(w http.ResponseWriter, r *http.Request, params api.CreateTokenParams) {
	requestID := requestID(r)

	req, err := s.convertToRequest(params)
	if err != nil {
		s.handleTokenError(w, err, &requestID)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, api.CodePayloadTooLarge,
				fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit), &requestID, nil)
			return
		}
		s.writeErrorResponse(w, http.StatusBadRequest, api.CodeSourceUnreadable,
			"Request body could not be read", &requestID, nil)
		return
	}

	result, err := s.tokenizer.Tokenize(bytes.NewReader(body), req)
	if err != nil {
		s.handleTokenError(w, err, &requestID)
		return
	}

	s.logger.Info("token created", "request_id", requestID, "tile", req.Tile.String(),
		"size", req.Size, "frame", req.Frame, "bytes", len(result.Data))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		s.logger.Error("writing response", "error", err, "request_id", requestID)
	}
}

// convertToRequest fills in defaults and validates the query parameters
func (s *Server) convertToRequest(params api.CreateTokenParams) (tokenize.Request, error) {
	req := tokenize.Request{
		Size:   tokenize.DefaultSize,
		Frame:  tokenize.DefaultFrame,
		Output: tokenize.DefaultOutput,
	}

	sel, err := tile.Parse(params.Tile)
	if err != nil {
		return req, err
	}
	req.Tile = sel

	if params.Size != nil {
		req.Size = *params.Size
	}
	if err := s.tokenizer.CheckSize(req.Size); err != nil {
		return req, err
	}

	if params.Frame != nil {
		req.Frame = *params.Frame
	}

	if params.Filter != nil {
		if _, err := token.ParseFilter(*params.Filter); err != nil {
			return req, err
		}
		req.Filter = *params.Filter
	}

	return req, nil
}

// handleTokenError maps pipeline error kinds onto HTTP responses
func (s *Server) handleTokenError(w http.ResponseWriter, err error, requestID *string) {
	status, code, message := http.StatusInternalServerError, api.CodeInternalError, "Internal server error"

	switch {
	case errors.Is(err, token.ErrInvalidTileNumber):
		status, code, message = http.StatusBadRequest, api.CodeInvalidTileNumber,
			"Invalid tile number. You must select 1 - 4, or leave this blank for upscaled images"
	case errors.Is(err, token.ErrInvalidFrame):
		status, code, message = http.StatusBadRequest, api.CodeInvalidFrame,
			"Invalid frame. No matching border asset was found"
	case errors.Is(err, token.ErrInvalidSize):
		status, code, message = http.StatusBadRequest, api.CodeInvalidSize,
			fmt.Sprintf("Size must be between 1 and %d pixels", s.tokenizer.MaxSize())
	case errors.Is(err, token.ErrInvalidFilter):
		status, code, message = http.StatusBadRequest, api.CodeInvalidFilter, err.Error()
	case errors.Is(err, token.ErrSourceTooLarge):
		status, code, message = http.StatusRequestEntityTooLarge, api.CodeSourceTooLarge,
			"The uploaded image has too many pixels"
	case errors.Is(err, token.ErrSourceUnreadable):
		status, code, message = http.StatusUnprocessableEntity, api.CodeSourceUnreadable,
			"Unable to read the uploaded image"
	case errors.Is(err, token.ErrEmptyRegion):
		status, code, message = http.StatusUnprocessableEntity, api.CodeEmptyRegion,
			"The selected tile is empty for an image this small"
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("tokenize failed", "error", err, "request_id", *requestID)
	} else {
		s.logger.Debug("tokenize rejected", "error", err, "request_id", *requestID)
	}

	s.writeErrorResponse(w, status, code, message, requestID, nil)
}

// ParamError reports query parameters that could not be bound
func (s *Server) ParamError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestID(r)
	details := map[string]interface{}{}

	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		details["parameter"] = paramErr.ParamName
	}

	s.writeErrorResponse(w, http.StatusBadRequest, api.CodeInvalidParameter, err.Error(), &requestID, details)
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string, details map[string]interface{}) {
	response := api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}

	s.writeJSON(w, statusCode, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// requestID prefers the id assigned by the RequestID middleware
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}
