// Package pipeline drives the per-frame measurement sequence: associate
// detections to tracks, detect measurement line crossings, and calculate
// a speed for every vehicle that completes the corridor.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/crossing"
	"github.com/swdee/go-speedcam/speed"
	"github.com/swdee/go-speedcam/tracker"
)

var (
	// ErrNoVehicleDetected is reported at end of run when the detection
	// stream produced no detections at all
	ErrNoVehicleDetected = errors.New("no vehicle detected")

	// ErrIncompleteCorridor is reported at end of run when vehicles were
	// detected but none crossed both measurement lines
	ErrIncompleteCorridor = errors.New("vehicle detected but did not cross both measurement lines")
)

// DetectionStream supplies per-frame detection lists in strictly
// increasing frame number order.  Next returns io.EOF once the stream is
// exhausted.
type DetectionStream interface {
	Next() (frameNumber int, detections []tracker.Detection, err error)
}

// FrameUpdate holds the outcome of processing a single frame
type FrameUpdate struct {
	// FrameNumber that was processed
	FrameNumber int
	// Tracks is the full set of known tracks after association
	Tracks []*tracker.Track
	// Events are the measurement line crossings fired on this frame
	Events []crossing.Event
	// Completed holds measurements for vehicles that finished the
	// corridor on this frame
	Completed []speed.Measurement
}

// Result is the terminal output of a measurement run
type Result struct {
	// RunID uniquely identifies this processing run
	RunID uuid.UUID `json:"run_id"`
	// Measurements for all vehicles that completed the corridor, in
	// completion order
	Measurements []speed.Measurement `json:"measurements"`
	// Summary statistics over the measurements
	Summary speed.Summary `json:"summary"`
	// FramesProcessed is the total number of frames fed through
	FramesProcessed int `json:"frames_processed"`
	// DetectionCount is the total number of detections consumed
	DetectionCount int `json:"detection_count"`
	// TrackCount is the number of vehicle tracks created
	TrackCount int `json:"track_count"`
	// ProcessingTime is the wall clock duration of the run, set by Run
	ProcessingTime time.Duration `json:"processing_time"`
}

// Pipeline orchestrates the tracker registry, crossing detector and
// speed calculator over a stream of frames.  It is single threaded,
// frames must be processed strictly in increasing frame number order for
// the crossing transition rule to hold.
type Pipeline struct {
	registry     *tracker.Registry
	detector     *crossing.Detector
	calculator   *speed.Calculator
	runID        uuid.UUID
	measurements []speed.Measurement

	framesProcessed int
	detectionCount  int
	lastFrame       int
}

// New returns a Pipeline for the given measurement configuration using
// the default IoU matching threshold
func New(cfg speedcam.Configuration) *Pipeline {
	return NewWithThreshold(cfg, tracker.DefaultIoUThreshold)
}

// NewWithThreshold returns a Pipeline using a custom IoU matching
// threshold for track association
func NewWithThreshold(cfg speedcam.Configuration, iouThreshold float64) *Pipeline {
	return &Pipeline{
		registry:   tracker.NewRegistry(iouThreshold),
		detector:   crossing.NewDetector(cfg),
		calculator: speed.NewCalculator(cfg),
		runID:      uuid.New(),
	}
}

// Registry returns the pipeline's track registry
func (p *Pipeline) Registry() *tracker.Registry {
	return p.registry
}

// ProcessFrame feeds one frame's detections through the measurement
// sequence and returns the frame outcome.  Frames must be supplied in
// increasing order.  A speed calculation failure for one vehicle does
// not stop the remaining tracks from being processed, the error is
// returned after the frame completes.
func (p *Pipeline) ProcessFrame(frameNumber int,
	detections []tracker.Detection) (FrameUpdate, error) {

	update := FrameUpdate{FrameNumber: frameNumber}

	if p.framesProcessed > 0 && frameNumber <= p.lastFrame {
		return update, fmt.Errorf("out of order frame %d after frame %d",
			frameNumber, p.lastFrame)
	}

	p.lastFrame = frameNumber
	p.framesProcessed++
	p.detectionCount += len(detections)

	update.Tracks = p.registry.Update(detections, frameNumber)

	var calcErr error

	for _, track := range update.Tracks {

		wasComplete := track.IsComplete()

		events := p.detector.Detect(track, frameNumber)
		update.Events = append(update.Events, events...)

		// vehicle finished the corridor on this frame
		if !wasComplete && track.IsComplete() {

			m, err := p.calculator.CalculateFromTrack(track)

			if err != nil {
				calcErr = fmt.Errorf("error calculating speed for track %d: %w",
					track.GetTrackID(), err)
				continue
			}

			p.measurements = append(p.measurements, m)
			update.Completed = append(update.Completed, m)
		}
	}

	return update, calcErr
}

// Finish closes the run and returns the collected measurements.  It
// reports ErrNoVehicleDetected when the whole stream produced no
// detections, and ErrIncompleteCorridor when vehicles were seen but none
// completed the corridor.  The Result is populated in both cases.
func (p *Pipeline) Finish() (Result, error) {

	result := Result{
		RunID:           p.runID,
		Measurements:    p.measurements,
		Summary:         speed.Summarize(p.measurements),
		FramesProcessed: p.framesProcessed,
		DetectionCount:  p.detectionCount,
		TrackCount:      p.registry.Count(),
	}

	if p.detectionCount == 0 {
		return result, ErrNoVehicleDetected
	}

	if len(p.measurements) == 0 {
		return result, ErrIncompleteCorridor
	}

	return result, nil
}

// Run drains the detection stream through the pipeline and returns the
// terminal result.  Per-vehicle calculation errors are returned once the
// stream has been fully processed.
func (p *Pipeline) Run(stream DetectionStream) (Result, error) {

	start := time.Now()

	var frameErrs error

	for {
		frameNumber, detections, err := stream.Next()

		if err == io.EOF {
			break
		}

		if err != nil {
			return Result{}, fmt.Errorf("error reading detection stream: %w", err)
		}

		_, err = p.ProcessFrame(frameNumber, detections)

		if err != nil {
			frameErrs = errors.Join(frameErrs, err)
		}
	}

	result, err := p.Finish()
	result.ProcessingTime = time.Since(start)

	if err != nil {
		return result, err
	}

	return result, frameErrs
}
