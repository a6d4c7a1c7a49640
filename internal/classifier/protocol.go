// Package classifier provides the client and wire types for talking to the
// genre classification service over HTTP/JSON.
package classifier

// PredictRequest is posted to /predict.
type PredictRequest struct {
	Text string `json:"text"`
}

// ProbabilityItem is one entry of the ranked distribution.
type ProbabilityItem struct {
	Genre       string  `json:"genre"`
	GenreTR     string  `json:"genre_tr"`
	Emoji       string  `json:"emoji"`
	Probability float64 `json:"probability"`
}

// PredictResponse is returned by /predict on success.
type PredictResponse struct {
	Success          bool              `json:"success"`
	PredictedGenre   string            `json:"predicted_genre"`
	PredictedGenreTR string            `json:"predicted_genre_tr"`
	Emoji            string            `json:"emoji"`
	Description      string            `json:"description"`
	Confidence       float64           `json:"confidence"`
	TopProbabilities []ProbabilityItem `json:"top_5_probabilities"`
	TranslatedText   string            `json:"translated_text"`
	OriginalText     string            `json:"original_text"`
}

// ErrorResponse is the error body shape. Detail is only honored when it is a
// JSON string; FastAPI validation errors send a list here.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status           string `json:"status"`
	ModelLoaded      bool   `json:"model_loaded"`
	VectorizerLoaded bool   `json:"vectorizer_loaded"`
}

// Healthy reports whether the service can serve predictions.
func (h HealthResponse) Healthy() bool {
	return h.Status == "healthy" && h.ModelLoaded && h.VectorizerLoaded
}
