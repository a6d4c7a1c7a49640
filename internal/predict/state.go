// Package predict holds the client-side prediction flow: input validation,
// the request lifecycle controller and the chart data mapping.
package predict

import "github.com/jwulff/cineai/internal/classifier"

// User-facing failure messages.
const (
	ValidationMessage   = "Lütfen en az 10 karakterlik bir film açıklaması girin."
	ConnectivityMessage = "Sunucuya bağlanılamadı. Backend servisinin çalıştığından emin olun."
)

// Phase is the view phase.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// FailureKind classifies a Failed state.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureTransport
	FailureService
	FailureMalformed
)

func (k FailureKind) String() string {
	switch k {
	case FailureValidation:
		return "validation"
	case FailureTransport:
		return "transport"
	case FailureService:
		return "service"
	case FailureMalformed:
		return "malformed"
	}
	return "none"
}

// Probability is one ranked genre.
type Probability struct {
	Genre          string  `json:"genre"`
	GenreLocalized string  `json:"genre_localized"`
	Emoji          string  `json:"emoji"`
	Probability    float64 `json:"probability"`
}

// Result is a successful prediction.
type Result struct {
	PredictedGenre          string        `json:"predicted_genre"`
	PredictedGenreLocalized string        `json:"predicted_genre_localized"`
	Emoji                   string        `json:"emoji"`
	Description             string        `json:"description"`
	Confidence              float64       `json:"confidence"`
	TopProbabilities        []Probability `json:"top_probabilities"`
	TranslatedText          string        `json:"translated_text"`
	OriginalText            string        `json:"original_text"`
}

// ResultFromResponse renames the wire fields into a Result.
func ResultFromResponse(r classifier.PredictResponse) Result {
	top := make([]Probability, 0, len(r.TopProbabilities))
	for _, p := range r.TopProbabilities {
		top = append(top, Probability{
			Genre:          p.Genre,
			GenreLocalized: p.GenreTR,
			Emoji:          p.Emoji,
			Probability:    p.Probability,
		})
	}
	return Result{
		PredictedGenre:          r.PredictedGenre,
		PredictedGenreLocalized: r.PredictedGenreTR,
		Emoji:                   r.Emoji,
		Description:             r.Description,
		Confidence:              r.Confidence,
		TopProbabilities:        top,
		TranslatedText:          r.TranslatedText,
		OriginalText:            r.OriginalText,
	}
}

// ViewState is exactly one of Idle, Submitting, Succeeded(Result) or
// Failed(Message). Result is non-nil only when Succeeded; Message and Kind
// are set only when Failed.
type ViewState struct {
	Phase   Phase
	Result  *Result
	Message string
	Kind    FailureKind
}

func idleState() ViewState       { return ViewState{Phase: Idle} }
func submittingState() ViewState { return ViewState{Phase: Submitting} }

func succeededState(r Result) ViewState {
	return ViewState{Phase: Succeeded, Result: &r}
}

func failedState(kind FailureKind, msg string) ViewState {
	return ViewState{Phase: Failed, Message: msg, Kind: kind}
}
