package tracker

import "sync"

// Point represents the x,y coordinates of the center of a tracked
// vehicle's bounding box
type Point struct {
	X, Y int
}

// history holds the recent center points for one track
type history struct {
	points []Point
}

// Trail keeps a bounded history of bounding box center points per track,
// used for drawing a movement trail on annotated frames
type Trail struct {
	// size is the maximum number of most recent points to keep per track
	size int
	// history of tracked points keyed by track ID
	history map[int]*history
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size specifies the
// maximum length of trail to maintain per track.
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int]*history),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int]*history)
}

// Add records the center point of the track's most recent detection.
// Tracks with no detections are ignored.
func (t *Trail) Add(track *Track) {

	last, ok := track.LastDetection()

	if !ok {
		return
	}

	t.Lock()
	defer t.Unlock()

	id := track.GetTrackID()

	if _, exists := t.history[id]; !exists {
		t.history[id] = &history{}
	}

	h := t.history[id]

	h.points = append(h.points, Point{
		X: last.Box.CenterX(),
		Y: last.Box.CenterY(),
	})

	// drop oldest point once history size is exceeded
	if len(h.points) > t.size {
		h.points = h.points[1:]
	}
}

// GetPoints gets the point history for a specific track id
func (t *Trail) GetPoints(id int) []Point {
	t.Lock()
	defer t.Unlock()

	if h, exists := t.history[id]; exists {
		return h.points
	}

	// no history yet
	return nil
}
