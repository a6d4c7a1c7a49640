package predict

// PaletteSize is the number of bar colors cycled through.
const PaletteSize = 5

// ChartDatum is one bar of the probability chart.
type ChartDatum struct {
	Label      string
	Value      float64
	ColorIndex int
}

// ToChartData maps the ranked probabilities to bars in the order given.
// Values are the service percentages as is.
func ToChartData(r Result) []ChartDatum {
	out := make([]ChartDatum, 0, len(r.TopProbabilities))
	for i, p := range r.TopProbabilities {
		out = append(out, ChartDatum{
			Label:      p.Emoji + " " + p.GenreLocalized,
			Value:      p.Probability,
			ColorIndex: i % PaletteSize,
		})
	}
	return out
}
