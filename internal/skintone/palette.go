package skintone

// Tone is a coarse skin-tone bucket.
type Tone string

// Tone buckets ordered from lightest to darkest.
const (
	Fair   Tone = "Fair"
	Light  Tone = "Light"
	Medium Tone = "Medium"
	Tan    Tone = "Tan"
	Deep   Tone = "Deep"
)

var palettes = map[Tone][]string{
	Fair:   {"Pastels", "White", "Lavender", "Light Blue", "Pink"},
	Light:  {"Teal", "Pink", "Red", "Cream", "Gold", "Coral"},
	Medium: {"Sea Green", "Turquoise", "Peach", "Rose", "White", "Navy"},
	Tan:    {"Beige", "Off White", "Sea Green", "Cream", "Burgundy"},
	Deep:   {"Navy Blue", "Black", "Charcoal", "Burgundy", "Olive", "Emerald"},
}

// Palette returns a copy of the recommended colours for t.
func Palette(t Tone) []string {
	p := palettes[t]
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// Classify buckets an RGB colour by its mean channel brightness.
func Classify(r, g, b uint8) Tone {
	brightness := (float64(r) + float64(g) + float64(b)) / 3
	switch {
	case brightness > 200:
		return Fair
	case brightness > 160:
		return Light
	case brightness > 120:
		return Medium
	case brightness > 80:
		return Tan
	default:
		return Deep
	}
}
