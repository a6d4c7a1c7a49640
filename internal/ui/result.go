package ui

import (
	"strings"

	"github.com/jwulff/cineai/internal/predict"
)

// RenderResult draws the prediction summary: emoji, genre, description and
// confidence badge.
func RenderResult(r predict.Result, width int) string {
	lines := []string{
		r.Emoji + "  " + GenreStyle.Render(r.PredictedGenreLocalized),
	}
	for _, l := range Wrap(r.Description, max(10, width)) {
		lines = append(lines, DimStyle.Render(l))
	}
	lines = append(lines,
		DimStyle.Render("Güven Skoru: ")+ConfidenceStyle(r.Confidence).Render(FormatPercent(r.Confidence)))
	return strings.Join(lines, "\n")
}

// RenderDiagnostics draws the echo fields the service returns.
func RenderDiagnostics(r predict.Result, width int) string {
	w := max(10, width-2)
	var lines []string

	lines = append(lines, DimStyle.Render("Orijinal Metin:"))
	for _, l := range Wrap(r.OriginalText, w) {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, DimStyle.Render("Çevrilen Metin (EN):"))
	for _, l := range Wrap(r.TranslatedText, w) {
		lines = append(lines, "  "+TranslatedStyle.Render(l))
	}
	lines = append(lines, DimStyle.Render("Tahmin Edilen Sınıf:"))
	lines = append(lines, "  "+CanonicalStyle.Render(r.PredictedGenre))

	return strings.Join(lines, "\n")
}
