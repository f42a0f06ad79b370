package speed

import (
	"errors"
	"math"
	"testing"

	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/tracker"
)

// almostEqual checks if two float64 values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func testConfig() speedcam.Configuration {
	return speedcam.Configuration{
		LeftCoordinate:  100,
		RightCoordinate: 500,
		Distance:        200,
		FPS:             30,
	}
}

func TestCalculate(t *testing.T) {

	const tolerance = 1e-9

	calc := NewCalculator(testConfig())

	// 30 frames at 30 fps over 2 meters is 2 m/s, 7.2 km/h
	m, err := calc.Calculate(100, 130, 1, 0.9)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.FrameCount != 30 {
		t.Errorf("expected frame count 30, got %d", m.FrameCount)
	}

	if !almostEqual(m.TimeSeconds, 1.0, tolerance) {
		t.Errorf("expected time 1.0s, got %v", m.TimeSeconds)
	}

	if !almostEqual(m.DistanceMeters, 2.0, tolerance) {
		t.Errorf("expected distance 2.0m, got %v", m.DistanceMeters)
	}

	if !almostEqual(m.SpeedMS, 2.0, tolerance) {
		t.Errorf("expected speed 2.0 m/s, got %v", m.SpeedMS)
	}

	if !almostEqual(m.SpeedKMH, 7.2, tolerance) {
		t.Errorf("expected speed 7.2 km/h, got %v", m.SpeedKMH)
	}

	if !m.IsValid || m.TrackID != 1 || m.Confidence != 0.9 ||
		m.LeftCrossingFrame != 100 || m.RightCrossingFrame != 130 {
		t.Errorf("unexpected measurement %+v", m)
	}
}

func TestCalculateInvalidFrames(t *testing.T) {

	calc := NewCalculator(testConfig())

	tests := []struct {
		name       string
		leftFrame  int
		rightFrame int
	}{
		{"right before left", 130, 100},
		{"equal frames", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			_, err := calc.Calculate(tt.leftFrame, tt.rightFrame, 1, 0.9)

			if err == nil {
				t.Fatalf("expected error for frames %d/%d",
					tt.leftFrame, tt.rightFrame)
			}

			var invalid *InvalidMeasurementError

			if !errors.As(err, &invalid) {
				t.Errorf("expected InvalidMeasurementError, got %T", err)
			}
		})
	}
}

func TestCalculateFromTrack(t *testing.T) {

	const tolerance = 1e-9

	calc := NewCalculator(testConfig())

	track := tracker.NewTrack(3)

	confidences := []float64{0.9, 0.8, 0.7, 0.6}

	for i, c := range confidences {
		track.AddDetection(tracker.NewDetection(100+i,
			tracker.NewBoundingBox(0, 0, 100+i*20, 50), c, 2, "car"))
	}

	// incomplete track is rejected
	if _, err := calc.CalculateFromTrack(track); err == nil {
		t.Errorf("expected error for incomplete track")
	}

	track.MarkLeftCrossed(100)
	track.MarkRightCrossed(130)

	m, err := calc.CalculateFromTrack(track)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.TrackID != 3 || m.FrameCount != 30 {
		t.Errorf("unexpected measurement %+v", m)
	}

	if !almostEqual(m.Confidence, 0.75, tolerance) {
		t.Errorf("expected mean confidence 0.75, got %v", m.Confidence)
	}
}

func TestConvertSpeed(t *testing.T) {

	const tolerance = 1e-6

	tests := []struct {
		name  string
		mps   float64
		units string
		want  float64
	}{
		{"mps passthrough", 10, MPS, 10},
		{"kmph", 10, KMPH, 36},
		{"kph alias", 10, KPH, 36},
		{"mph", 10, MPH, 22.3694},
		{"unknown unit", 10, "furlongs", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertSpeed(tt.mps, tt.units); !almostEqual(got, tt.want, tolerance) {
				t.Errorf("ConvertSpeed() = %v, want %v", got, tt.want)
			}
		})
	}

	if !IsValidUnit(MPH) || IsValidUnit("furlongs") {
		t.Errorf("unexpected IsValidUnit results")
	}
}

func TestSummarize(t *testing.T) {

	const tolerance = 1e-9

	if s := Summarize(nil); s.Count != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}

	measurements := []Measurement{
		{SpeedKMH: 40, IsValid: true},
		{SpeedKMH: 60, IsValid: true},
		{SpeedKMH: 999, IsValid: false},
	}

	s := Summarize(measurements)

	if s.Count != 2 {
		t.Errorf("expected 2 valid measurements, got %d", s.Count)
	}

	if !almostEqual(s.MeanKMH, 50, tolerance) {
		t.Errorf("expected mean 50, got %v", s.MeanKMH)
	}

	if s.MinKMH != 40 || s.MaxKMH != 60 {
		t.Errorf("expected min/max 40/60, got %v/%v", s.MinKMH, s.MaxKMH)
	}
}
