package speed

import (
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate statistics over the speed measurements of a
// run
type Summary struct {
	// Count of valid measurements
	Count int `json:"count"`
	// MeanKMH is the mean speed in km/h
	MeanKMH float64 `json:"mean_kmh"`
	// StdDevKMH is the speed standard deviation in km/h, 0 when fewer
	// than two measurements exist
	StdDevKMH float64 `json:"stddev_kmh"`
	// MinKMH is the slowest measured speed in km/h
	MinKMH float64 `json:"min_kmh"`
	// MaxKMH is the fastest measured speed in km/h
	MaxKMH float64 `json:"max_kmh"`
}

// Summarize computes aggregate speed statistics over the given
// measurements, skipping any marked invalid
func Summarize(measurements []Measurement) Summary {

	var speeds []float64

	for _, m := range measurements {
		if m.IsValid {
			speeds = append(speeds, m.SpeedKMH)
		}
	}

	if len(speeds) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:   len(speeds),
		MeanKMH: stat.Mean(speeds, nil),
		MinKMH:  speeds[0],
		MaxKMH:  speeds[0],
	}

	for _, v := range speeds {
		if v < s.MinKMH {
			s.MinKMH = v
		}
		if v > s.MaxKMH {
			s.MaxKMH = v
		}
	}

	if len(speeds) > 1 {
		s.StdDevKMH = stat.StdDev(speeds, nil)
	}

	return s
}
