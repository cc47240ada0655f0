package service

const (
	// HealthAssessmentPath is the plant.id v3 health assessment endpoint.
	HealthAssessmentPath = "/api/v3/health_assessment"

	// HeaderAPIKey carries the Kindwise API key.
	HeaderAPIKey = "Api-Key"
)
