package tracker

import (
	"testing"
)

func TestTrackAddDetection(t *testing.T) {

	track := NewTrack(1)

	if _, ok := track.LastDetection(); ok {
		t.Errorf("empty track must have no last detection")
	}

	if _, _, ok := track.RecentPair(); ok {
		t.Errorf("empty track must have no recent pair")
	}

	track.AddDetection(NewDetection(10, NewBoundingBox(0, 0, 50, 50), 0.9, 2, "car"))

	if track.GetFirstFrame() != 10 || track.GetLastFrame() != 10 {
		t.Errorf("expected first/last frame 10/10, got %d/%d",
			track.GetFirstFrame(), track.GetLastFrame())
	}

	if _, _, ok := track.RecentPair(); ok {
		t.Errorf("single detection track must have no recent pair")
	}

	track.AddDetection(NewDetection(11, NewBoundingBox(5, 0, 55, 50), 0.7, 2, "car"))

	if track.GetFirstFrame() != 10 || track.GetLastFrame() != 11 {
		t.Errorf("expected first/last frame 10/11, got %d/%d",
			track.GetFirstFrame(), track.GetLastFrame())
	}

	prev, curr, ok := track.RecentPair()

	if !ok || prev.FrameNumber != 10 || curr.FrameNumber != 11 {
		t.Errorf("unexpected recent pair %v %v %v", prev, curr, ok)
	}
}

func TestTrackCrossingMarksSetOnce(t *testing.T) {

	track := NewTrack(1)

	// right can not be set before left
	if track.MarkRightCrossed(50) {
		t.Errorf("right crossing must not be settable before left")
	}

	if track.GetState() != Tracking {
		t.Errorf("expected Tracking state, got %v", track.GetState())
	}

	if !track.MarkLeftCrossed(100) {
		t.Errorf("expected left crossing mark to be set")
	}

	if track.GetState() != LeftCrossed {
		t.Errorf("expected LeftCrossed state, got %v", track.GetState())
	}

	// second attempt must not overwrite
	if track.MarkLeftCrossed(105) {
		t.Errorf("left crossing mark must only be settable once")
	}

	if frame, ok := track.GetLeftCrossing().Frame(); !ok || frame != 100 {
		t.Errorf("expected left crossing frame 100, got %d (%v)", frame, ok)
	}

	if !track.MarkRightCrossed(130) {
		t.Errorf("expected right crossing mark to be set")
	}

	if track.MarkRightCrossed(140) {
		t.Errorf("right crossing mark must only be settable once")
	}

	if frame, ok := track.GetRightCrossing().Frame(); !ok || frame != 130 {
		t.Errorf("expected right crossing frame 130, got %d (%v)", frame, ok)
	}

	if track.GetState() != BothCrossed || !track.IsComplete() {
		t.Errorf("expected complete track in BothCrossed state")
	}
}

func TestTrackMeanConfidence(t *testing.T) {

	const tolerance = 1e-9

	track := NewTrack(1)

	if track.MeanConfidence() != 0.0 {
		t.Errorf("empty track mean confidence must be 0")
	}

	confidences := []float64{0.9, 0.8, 0.7}

	for i, c := range confidences {
		track.AddDetection(NewDetection(i+1, NewBoundingBox(0, 0, 10, 10), c, 2, "car"))
	}

	if got := track.MeanConfidence(); !almostEqual(got, 0.8, tolerance) {
		t.Errorf("expected mean confidence 0.8, got %v", got)
	}
}
