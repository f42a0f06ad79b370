package tracker

// DefaultIoUThreshold is the minimum IoU required to match a detection
// to an existing track
const DefaultIoUThreshold = 0.3

// Registry owns the set of active vehicle tracks and associates each
// frame's detections to them using greedy IoU matching.  Tracks are kept
// for the lifetime of the registry, a vehicle that goes undetected for
// some frames keeps its track and can be matched again later.  Whether
// to prune long stale tracks is left to the caller, the registry never
// removes them itself.
type Registry struct {
	// Minimum IoU for matching detections to existing tracks
	iouThreshold float64
	// Counter for assigning unique track IDs, never reused
	nextTrackID int
	// Tracks keyed by track ID
	tracks map[int]*Track
	// Track IDs in creation order for deterministic iteration
	order []int
}

// NewRegistry initializes and returns a new track Registry.  An
// iouThreshold of 0 or less selects DefaultIoUThreshold.
func NewRegistry(iouThreshold float64) *Registry {

	if iouThreshold <= 0 {
		iouThreshold = DefaultIoUThreshold
	}

	return &Registry{
		iouThreshold: iouThreshold,
		nextTrackID:  1,
		tracks:       make(map[int]*Track),
	}
}

// Update associates the given frame's detections with the existing
// tracks and returns the full set of currently known tracks in track ID
// order.  Each detection is matched to the unmatched track it has the
// highest IoU with, measured against that track's most recent detection,
// provided the IoU meets the threshold.  Ties are broken in favour of
// the earliest created track.  Detections left unmatched open new
// tracks.  An empty detection list returns the tracks unchanged.
func (r *Registry) Update(detections []Detection, frameNumber int) []*Track {

	if len(detections) == 0 {
		return r.Tracks()
	}

	// track IDs already matched this frame
	matched := make(map[int]bool)
	used := make([]bool, len(detections))

	for i, det := range detections {

		bestIoU := 0.0
		bestID := 0
		found := false

		// scan tracks in creation order so equal IoU keeps the lowest ID
		for _, id := range r.order {

			if matched[id] {
				continue
			}

			last, ok := r.tracks[id].LastDetection()

			if !ok {
				continue
			}

			iou := det.Box.IoU(last.Box)

			if iou >= r.iouThreshold && iou > bestIoU {
				bestIoU = iou
				bestID = id
				found = true
			}
		}

		if found {
			r.tracks[bestID].AddDetection(det)
			matched[bestID] = true
			used[i] = true
		}
	}

	// open new tracks for unmatched detections
	for i, det := range detections {

		if used[i] {
			continue
		}

		track := NewTrack(r.nextTrackID)
		track.AddDetection(det)

		r.tracks[track.GetTrackID()] = track
		r.order = append(r.order, track.GetTrackID())
		r.nextTrackID++
	}

	return r.Tracks()
}

// Tracks returns all known tracks in track ID order
func (r *Registry) Tracks() []*Track {

	out := make([]*Track, 0, len(r.order))

	for _, id := range r.order {
		out = append(out, r.tracks[id])
	}

	return out
}

// GetTrack returns the track with the given ID
func (r *Registry) GetTrack(trackID int) (*Track, bool) {
	track, ok := r.tracks[trackID]
	return track, ok
}

// Count returns the number of tracks held in the registry
func (r *Registry) Count() int {
	return len(r.tracks)
}
