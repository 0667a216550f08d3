package runner

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// HUD is the text shown above the playfield.
type HUD struct {
	Score    string
	Combo    string
	Distance string
	Progress float64
}

// NewHUD formats a snapshot for display.
func NewHUD(snap Snapshot) HUD {
	return HUD{
		Score:    FormatScore(snap.Run.Score),
		Combo:    FormatCombo(snap.Run.Combo),
		Distance: FormatDistance(snap.Run.Distance),
		Progress: snap.Progress,
	}
}

// FormatScore rounds the score and groups thousands: 12345.6 -> "12,346".
func FormatScore(score float64) string {
	return humanize.Comma(int64(math.Round(score)))
}

// FormatCombo renders the multiplier with at most one decimal: "Combo x1.3".
// Repeated 0.1 steps accumulate float error, so the value is rounded first.
func FormatCombo(combo float64) string {
	return "Combo x" + strconv.FormatFloat(math.Round(combo*10)/10, 'f', -1, 64)
}

// FormatDistance renders whole metres: "120 m".
func FormatDistance(distance float64) string {
	return fmt.Sprintf("%d m", int64(math.Floor(distance)))
}
