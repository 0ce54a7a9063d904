package skeleton

import "git.home.luguber.info/inful/appshell/internal/layout"

const (
	// DefaultCardRatio is used when no card carries usable dimensions.
	DefaultCardRatio = 0.8
	// DefaultCardCount is the number of placeholders rendered for a capture without cards.
	DefaultCardCount = 8
)

// AverageCardRatio returns the mean width/height of cards with numeric, non-zero dimensions.
func AverageCardRatio(cards []layout.Node) float64 {
	var sum float64
	var n int
	for _, card := range cards {
		rect := card.Get("rect")
		w, okW := rect.Get("width").Float()
		h, okH := rect.Get("height").Float()
		if !okW || !okH || w == 0 || h == 0 {
			continue
		}
		sum += w / h
		n++
	}
	if n == 0 {
		return DefaultCardRatio
	}
	return sum / float64(n)
}
