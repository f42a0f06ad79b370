// Package speed derives validated speed measurements from a completed
// track's two measurement line crossing frames.
package speed

import (
	"fmt"

	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/tracker"
)

// MSToKMH is the conversion factor from meters per second to kilometers
// per hour
const MSToKMH = 3.6

// Measurement represents the final calculated speed result for one
// vehicle
type Measurement struct {
	// SpeedKMH is the calculated speed in kilometers per hour
	SpeedKMH float64 `json:"speed_kmh"`
	// SpeedMS is the calculated speed in meters per second
	SpeedMS float64 `json:"speed_ms"`
	// FrameCount is the number of frames between the two crossings
	FrameCount int `json:"frame_count"`
	// TimeSeconds is the corridor transit duration
	TimeSeconds float64 `json:"time_seconds"`
	// DistanceMeters is the configured measurement distance in meters
	DistanceMeters float64 `json:"distance_meters"`
	// LeftCrossingFrame is the frame the left line was crossed on
	LeftCrossingFrame int `json:"left_crossing_frame"`
	// RightCrossingFrame is the frame the right line was crossed on
	RightCrossingFrame int `json:"right_crossing_frame"`
	// TrackID of the vehicle measured
	TrackID int `json:"track_id"`
	// Confidence is the mean confidence over the track's detections
	Confidence float64 `json:"confidence"`
	// IsValid reports whether the measurement passed validation
	IsValid bool `json:"is_valid"`
}

// InvalidMeasurementError indicates crossing frames that can not produce
// a valid speed measurement
type InvalidMeasurementError struct {
	Reason string
}

func (e *InvalidMeasurementError) Error() string {
	return "invalid measurement: " + e.Reason
}

// Calculator computes speed measurements from crossing frame pairs using
// the configured real world distance and frame rate
type Calculator struct {
	// Measurement distance in meters
	distanceMeters float64
	// Video frame rate
	fps float64
}

// NewCalculator returns a speed Calculator for the given measurement
// configuration
func NewCalculator(cfg speedcam.Configuration) *Calculator {
	return &Calculator{
		distanceMeters: cfg.DistanceMeters(),
		fps:            cfg.FPS,
	}
}

// Calculate computes the speed measurement for a corridor transit
// between the two given crossing frames.  It fails with an
// InvalidMeasurementError when the frames give a zero or negative frame
// count or duration.  Crossing detection ordering makes that structurally
// impossible, the check is defensive.
func (c *Calculator) Calculate(leftFrame, rightFrame, trackID int,
	confidence float64) (Measurement, error) {

	frameCount := rightFrame - leftFrame

	if frameCount <= 0 {
		return Measurement{}, &InvalidMeasurementError{
			Reason: fmt.Sprintf("frame_count must be > 0, got %d", frameCount),
		}
	}

	timeSeconds := float64(frameCount) / c.fps

	if timeSeconds <= 0 {
		return Measurement{}, &InvalidMeasurementError{
			Reason: fmt.Sprintf("time_seconds must be > 0, got %f", timeSeconds),
		}
	}

	speedMS := c.distanceMeters / timeSeconds

	return Measurement{
		SpeedKMH:           speedMS * MSToKMH,
		SpeedMS:            speedMS,
		FrameCount:         frameCount,
		TimeSeconds:        timeSeconds,
		DistanceMeters:     c.distanceMeters,
		LeftCrossingFrame:  leftFrame,
		RightCrossingFrame: rightFrame,
		TrackID:            trackID,
		Confidence:         confidence,
		IsValid:            true,
	}, nil
}

// CalculateFromTrack computes the speed measurement for a track that has
// crossed both measurement lines, using the mean confidence over the
// track's full detection history
func (c *Calculator) CalculateFromTrack(track *tracker.Track) (Measurement, error) {

	if !track.IsComplete() {
		return Measurement{}, &InvalidMeasurementError{
			Reason: fmt.Sprintf("track %d has not crossed both measurement lines",
				track.GetTrackID()),
		}
	}

	leftFrame, _ := track.GetLeftCrossing().Frame()
	rightFrame, _ := track.GetRightCrossing().Frame()

	return c.Calculate(leftFrame, rightFrame, track.GetTrackID(),
		track.MeanConfidence())
}
