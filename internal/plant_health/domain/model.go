package domain

import (
	"encoding/json"
	"strings"
)

// ImagePrefix is prepended to every inbound image. The upstream is always
// told the image is JPEG, whatever the bytes are.
const ImagePrefix = "data:image/jpeg;base64,"

// HealthOnly is the value plant.id requires in the "health" field to run a
// health assessment without species identification.
const HealthOnly = "only"

// AssessmentDetails are the fields requested through the details query parameter.
var AssessmentDetails = []string{
	"local_name",
	"description",
	"treatment",
	"classification",
	"common_names",
	"cause",
}

// ImageRequest is the inbound body of POST /health.
// Image is a pointer so that a present-but-empty string passes binding
// while an absent field is rejected.
type ImageRequest struct {
	Image *string `json:"image" binding:"required"`
}

// AssessmentRequest is the body sent to the upstream health assessment endpoint.
type AssessmentRequest struct {
	Images []string `json:"images"`
	Health string   `json:"health"`
}

// Assessment is a completed upstream exchange. Body is kept opaque.
type Assessment struct {
	StatusCode int
	Body       json.RawMessage
}

// ErrorDescriptor is returned to the client when the upstream call fails.
type ErrorDescriptor struct {
	Error string `json:"error"`
}

// DataURI wraps a base64 payload in a JPEG data URI without inspecting it.
func DataURI(image string) string {
	return ImagePrefix + image
}

// NewAssessmentRequest builds the upstream body for a single image.
func NewAssessmentRequest(image string) AssessmentRequest {
	return AssessmentRequest{
		Images: []string{DataURI(image)},
		Health: HealthOnly,
	}
}

// DetailsQuery returns the details parameter with literal commas.
func DetailsQuery() string {
	return "details=" + strings.Join(AssessmentDetails, ",")
}
