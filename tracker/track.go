package tracker

import (
	"gonum.org/v1/gonum/stat"
)

// TrackState represents the measurement state of a tracked vehicle
type TrackState int

const (
	// Vehicle has not crossed either measurement line yet
	Tracking TrackState = 0
	// Vehicle has crossed the left measurement line only
	LeftCrossed TrackState = 1
	// Vehicle has crossed both measurement lines, terminal state
	BothCrossed TrackState = 2
)

// CrossingMark records the frame at which a vehicle crossed a measurement
// line.  The zero value means not crossed.  Once set a mark can not be
// changed, which guarantees each line is reported crossed at most once
// per track.
type CrossingMark struct {
	frame int
	set   bool
}

// Crossed returns whether the mark has been set
func (m CrossingMark) Crossed() bool {
	return m.set
}

// Frame returns the frame number the crossing occurred on and whether
// the mark has been set
func (m CrossingMark) Frame() (int, bool) {
	return m.frame, m.set
}

// Track represents a single vehicle followed across frames.  A track
// accumulates one detection per frame it was matched in and carries the
// two measurement line crossing marks.  Tracks are created and owned by
// the Registry.
type Track struct {
	// Unique ID for the track
	trackID int
	// Detections matched to this track in frame order
	detections []Detection
	// Frame number of the first detection
	firstFrame int
	// Frame number of the most recent detection
	lastFrame int
	// Left measurement line crossing mark
	leftCrossing CrossingMark
	// Right measurement line crossing mark
	rightCrossing CrossingMark
}

// NewTrack creates a new Track with the given track ID
func NewTrack(trackID int) *Track {
	return &Track{
		trackID: trackID,
	}
}

// GetTrackID returns the unique ID for the track
func (t *Track) GetTrackID() int {
	return t.trackID
}

// AddDetection appends a detection to the track's history and updates
// the first/last detection frame numbers
func (t *Track) AddDetection(det Detection) {

	t.detections = append(t.detections, det)

	if len(t.detections) == 1 {
		t.firstFrame = det.FrameNumber
	}

	t.lastFrame = det.FrameNumber
}

// GetDetections returns the track's detections in frame order
func (t *Track) GetDetections() []Detection {
	return t.detections
}

// LastDetection returns the most recent detection, or false when the
// track has no detections yet
func (t *Track) LastDetection() (Detection, bool) {

	if len(t.detections) == 0 {
		return Detection{}, false
	}

	return t.detections[len(t.detections)-1], true
}

// RecentPair returns the second most recent and most recent detections.
// It returns false when the track holds fewer than two detections, in
// which case no frame to frame transition can be observed.
func (t *Track) RecentPair() (prev, curr Detection, ok bool) {

	if len(t.detections) < 2 {
		return Detection{}, Detection{}, false
	}

	n := len(t.detections)
	return t.detections[n-2], t.detections[n-1], true
}

// GetFirstFrame returns the frame number of the track's first detection
func (t *Track) GetFirstFrame() int {
	return t.firstFrame
}

// GetLastFrame returns the frame number of the track's latest detection
func (t *Track) GetLastFrame() int {
	return t.lastFrame
}

// GetLeftCrossing returns the left measurement line crossing mark
func (t *Track) GetLeftCrossing() CrossingMark {
	return t.leftCrossing
}

// GetRightCrossing returns the right measurement line crossing mark
func (t *Track) GetRightCrossing() CrossingMark {
	return t.rightCrossing
}

// MarkLeftCrossed sets the left crossing mark to the given frame.  It
// returns false without modifying the mark if it was already set.
func (t *Track) MarkLeftCrossed(frameNumber int) bool {

	if t.leftCrossing.set {
		return false
	}

	t.leftCrossing = CrossingMark{frame: frameNumber, set: true}
	return true
}

// MarkRightCrossed sets the right crossing mark to the given frame.  It
// returns false without modifying the mark if it was already set, or if
// the left mark has not been set yet, as a right crossing is not
// reachable before the left.
func (t *Track) MarkRightCrossed(frameNumber int) bool {

	if !t.leftCrossing.set || t.rightCrossing.set {
		return false
	}

	t.rightCrossing = CrossingMark{frame: frameNumber, set: true}
	return true
}

// GetState returns the measurement state derived from the crossing marks
func (t *Track) GetState() TrackState {

	switch {
	case t.leftCrossing.set && t.rightCrossing.set:
		return BothCrossed
	case t.leftCrossing.set:
		return LeftCrossed
	default:
		return Tracking
	}
}

// IsComplete returns whether the vehicle has crossed both measurement
// lines
func (t *Track) IsComplete() bool {
	return t.leftCrossing.set && t.rightCrossing.set
}

// MeanConfidence returns the arithmetic mean of the confidence scores of
// all the track's detections, or 0 for a track with no detections
func (t *Track) MeanConfidence() float64 {

	if len(t.detections) == 0 {
		return 0.0
	}

	scores := make([]float64, len(t.detections))

	for i, det := range t.detections {
		scores[i] = det.Confidence
	}

	return stat.Mean(scores, nil)
}
