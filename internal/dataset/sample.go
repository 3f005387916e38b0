package dataset

import (
	"math"
	"time"
)

const sampleDays = 42

// Sample returns a built-in two-series dataset, one sample per day.
func Sample() *Dataset {
	start := time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC)

	xs := make([]float64, sampleDays)
	joined := make([]float64, sampleDays)
	left := make([]float64, sampleDays)
	for i := range sampleDays {
		xs[i] = float64(start.AddDate(0, 0, i).UnixMilli())

		weekly := math.Sin(float64(i) * 2 * math.Pi / 7)
		trend := float64(i) * 1.5
		joined[i] = math.Round(60 + trend + 25*weekly + float64((i*37)%11))
		left[i] = math.Round(30 + trend/2 - 10*weekly + float64((i*17)%7))
	}

	return &Dataset{
		Columns: []Column{
			{Key: "x", Values: xs},
			{Key: "y0", Values: joined},
			{Key: "y1", Values: left},
		},
		Types: map[string]Kind{
			"x":  KindX,
			"y0": KindLine,
			"y1": KindLine,
		},
		Colors: map[string]string{
			"y0": "#3DC23F",
			"y1": "#F34C44",
		},
		Names: map[string]string{
			"y0": "Joined",
			"y1": "Left",
		},
	}
}
