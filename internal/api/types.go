// Package api defines the HTTP surface of the token service: request
// parameters, response bodies and the chi routing that binds them.
package api

import "time"

// Defines values for HealthResponseStatus.
const (
	Healthy   HealthResponseStatus = "healthy"
	Unhealthy HealthResponseStatus = "unhealthy"
)

// Error codes carried in ErrorResponse.Error.
const (
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeInvalidTileNumber = "INVALID_TILE_NUMBER"
	CodeInvalidFrame      = "INVALID_FRAME"
	CodeInvalidSize       = "INVALID_SIZE"
	CodeInvalidFilter     = "INVALID_FILTER"
	CodeSourceUnreadable  = "SOURCE_UNREADABLE"
	CodeSourceTooLarge    = "SOURCE_TOO_LARGE"
	CodeEmptyRegion       = "EMPTY_REGION"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status    HealthResponseStatus `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
	Uptime    *int                 `json:"uptime,omitempty"`
	Version   *string              `json:"version,omitempty"`
}

// FramesResponse lists the frame ids a token can be drawn with.
type FramesResponse struct {
	Frames []int `json:"frames"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message"`
	RequestId *string                 `json:"request_id,omitempty"`
	Details   *map[string]interface{} `json:"details,omitempty"`
}

// CreateTokenParams defines parameters for CreateToken.
type CreateTokenParams struct {
	// Tile is the quadrant to cut, 1-4. Omit for upscaled images.
	Tile *int `form:"tile,omitempty" json:"tile,omitempty"`

	// Size is the token edge length in pixels.
	Size *int `form:"size,omitempty" json:"size,omitempty"`

	// Frame is the frame id, 0 for none.
	Frame *int `form:"frame,omitempty" json:"frame,omitempty"`

	// Filter names the resampling filter.
	Filter *string `form:"filter,omitempty" json:"filter,omitempty"`
}
