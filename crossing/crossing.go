// Package crossing detects the exact frame at which a tracked vehicle's
// rightmost bounding box edge crosses the two fixed measurement lines.
//
// Detection is transition based: an event fires only on the frame where
// the edge moves from before a line to at or past it, compared against
// the vehicle's position in the immediately preceding frame.  A plain
// threshold test would re-trigger on every frame the vehicle remains
// past the line.
package crossing

import (
	"log"

	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/tracker"
)

// CoordinateType identifies which measurement line an event refers to
type CoordinateType string

const (
	Left  CoordinateType = "left"
	Right CoordinateType = "right"
)

// Event represents a vehicle crossing a measurement line.  Events are
// emitted facts consumed immediately by callers, the detector does not
// retain them.
type Event struct {
	// TrackID of the vehicle that crossed
	TrackID int
	// FrameNumber the crossing occurred on
	FrameNumber int
	// Coordinate is the measurement line that was crossed
	Coordinate CoordinateType
	// CoordinateValue is the pixel X position of the line
	CoordinateValue int
	// CarRightmostX is the vehicle's rightmost edge position that
	// triggered the event
	CarRightmostX int
	// Confidence of the triggering detection
	Confidence float64
}

// Detector inspects track position history and emits measurement line
// crossing events.  It drives each track through the
// Tracking → LeftCrossed → BothCrossed state machine by setting the
// track's crossing marks, the right line is never checked before the
// left has been crossed.
type Detector struct {
	// Pixel X position of the left measurement line
	leftCoordinate int
	// Pixel X position of the right measurement line
	rightCoordinate int
	// Track IDs already diagnosed as first sighted past the left line
	diagnosed map[int]bool
}

// NewDetector returns a crossing Detector for the configured measurement
// lines
func NewDetector(cfg speedcam.Configuration) *Detector {
	return &Detector{
		leftCoordinate:  cfg.LeftCoordinate,
		rightCoordinate: cfg.RightCoordinate,
		diagnosed:       make(map[int]bool),
	}
}

// Detect checks the track for measurement line crossings on the given
// frame and returns the events fired.  In practice this is zero or one
// event, both lines can only fire on the same frame when a vehicle
// clears the entire corridor between two consecutive frames.
func (d *Detector) Detect(track *tracker.Track, frameNumber int) []Event {

	curr, ok := track.LastDetection()

	if !ok {
		return nil
	}

	var events []Event

	// left line check
	if !track.GetLeftCrossing().Crossed() {

		prev, latest, havePair := track.RecentPair()

		if !havePair {
			// a single sighting gives no previous position to compare
			// against.  If the vehicle is already past the line no
			// transition can ever be observed for it, which is a
			// deliberate non-detection.
			if curr.Box.X2 >= d.leftCoordinate && !d.diagnosed[track.GetTrackID()] {
				d.diagnosed[track.GetTrackID()] = true
				log.Printf("track %d first sighted at x2=%d already past left line %d, no crossing will be detected",
					track.GetTrackID(), curr.Box.X2, d.leftCoordinate)
			}

		} else if prev.Box.X2 < d.leftCoordinate && latest.Box.X2 >= d.leftCoordinate {

			if track.MarkLeftCrossed(frameNumber) {
				events = append(events, Event{
					TrackID:         track.GetTrackID(),
					FrameNumber:     frameNumber,
					Coordinate:      Left,
					CoordinateValue: d.leftCoordinate,
					CarRightmostX:   latest.Box.X2,
					Confidence:      latest.Confidence,
				})
			}
		}
	}

	// right line check, only reachable once the left line was crossed
	if track.GetLeftCrossing().Crossed() && !track.GetRightCrossing().Crossed() {

		prev, latest, havePair := track.RecentPair()

		if havePair && prev.Box.X2 < d.rightCoordinate && latest.Box.X2 >= d.rightCoordinate {

			if track.MarkRightCrossed(frameNumber) {
				events = append(events, Event{
					TrackID:         track.GetTrackID(),
					FrameNumber:     frameNumber,
					Coordinate:      Right,
					CoordinateValue: d.rightCoordinate,
					CarRightmostX:   latest.Box.X2,
					Confidence:      latest.Confidence,
				})
			}
		}
	}

	return events
}
