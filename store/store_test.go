package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/swdee/go-speedcam/pipeline"
	"github.com/swdee/go-speedcam/speed"
)

func testResult() pipeline.Result {
	return pipeline.Result{
		RunID: uuid.New(),
		Measurements: []speed.Measurement{
			{
				SpeedKMH:           7.2,
				SpeedMS:            2.0,
				FrameCount:         30,
				TimeSeconds:        1.0,
				DistanceMeters:     2.0,
				LeftCrossingFrame:  100,
				RightCrossingFrame: 130,
				TrackID:            1,
				Confidence:         0.85,
				IsValid:            true,
			},
			{
				SpeedKMH:           14.4,
				SpeedMS:            4.0,
				FrameCount:         15,
				TimeSeconds:        0.5,
				DistanceMeters:     2.0,
				LeftCrossingFrame:  200,
				RightCrossingFrame: 215,
				TrackID:            2,
				Confidence:         0.9,
				IsValid:            true,
			},
		},
		FramesProcessed: 300,
		DetectionCount:  120,
		TrackCount:      2,
	}
}

func TestSaveRunAndMeasurements(t *testing.T) {

	s, err := Open(":memory:")

	if err != nil {
		t.Fatalf("error opening store: %v", err)
	}

	defer s.Close()

	result := testResult()

	err = s.SaveRun(result, "traffic.mp4")

	if err != nil {
		t.Fatalf("error saving run: %v", err)
	}

	count, err := s.RunCount()

	if err != nil {
		t.Fatalf("error counting runs: %v", err)
	}

	if count != 1 {
		t.Errorf("expected 1 run, got %d", count)
	}

	got, err := s.Measurements(result.RunID.String())

	if err != nil {
		t.Fatalf("error reading measurements: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(got))
	}

	for i, m := range got {

		want := result.Measurements[i]

		if m.TrackID != want.TrackID {
			t.Errorf("measurement %d: expected track %d, got %d",
				i, want.TrackID, m.TrackID)
		}

		if m.SpeedKMH != want.SpeedKMH {
			t.Errorf("measurement %d: expected speed %f, got %f",
				i, want.SpeedKMH, m.SpeedKMH)
		}

		if m.FrameCount != want.FrameCount {
			t.Errorf("measurement %d: expected frame count %d, got %d",
				i, want.FrameCount, m.FrameCount)
		}

		if !m.IsValid {
			t.Errorf("measurement %d: expected valid measurement", i)
		}
	}
}

func TestMeasurementsUnknownRun(t *testing.T) {

	s, err := Open(":memory:")

	if err != nil {
		t.Fatalf("error opening store: %v", err)
	}

	defer s.Close()

	got, err := s.Measurements(uuid.NewString())

	if err != nil {
		t.Fatalf("error reading measurements: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected no measurements, got %d", len(got))
	}
}
