package app

import (
	"github.com/jwulff/cineai/internal/classifier"
	"github.com/jwulff/cineai/internal/predict"
)

// PredictionResolvedMsg carries the outcome of an issued prediction call.
type PredictionResolvedMsg struct {
	Resolution predict.Resolution
}

// HealthResponseMsg carries the response to the startup health probe.
type HealthResponseMsg struct {
	Response classifier.HealthResponse
}

// HealthErrorMsg is sent when the health probe fails.
type HealthErrorMsg struct {
	Err error
}
