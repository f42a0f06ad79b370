package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"time"

	"gocv.io/x/gocv"

	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/detect"
	"github.com/swdee/go-speedcam/pipeline"
	"github.com/swdee/go-speedcam/render"
	"github.com/swdee/go-speedcam/speed"
	"github.com/swdee/go-speedcam/store"
	"github.com/swdee/go-speedcam/tracker"
)

// SpeedCam runs vehicle speed measurement over a video file and
// optionally writes out an annotated copy of the video
type SpeedCam struct {
	// cfg is the measurement configuration scaled to the processed frame
	// size
	cfg speedcam.Configuration
	// detector finds vehicles in each frame
	detector *detect.Detector
	// pipe drives tracking, crossing detection and speed calculation
	pipe *pipeline.Pipeline
	// trail records vehicle movement history for rendering
	trail *tracker.Trail
	// writer outputs the annotated video, nil when not requested
	writer *gocv.VideoWriter
	// resize is the target frame size, zero when no resizing applies
	resize image.Point
	// measurements collected as vehicles complete the corridor
	measurements []speed.Measurement
	font         render.Font
}

// NewSpeedCam returns a SpeedCam ready to process frames of the given
// size
func NewSpeedCam(cfg speedcam.Configuration, frameWidth, frameHeight int,
	modelFile, labelFile string, confThreshold float64) (*SpeedCam, error) {

	// scale measurement line coordinates when downsizing the video
	scaledCfg, factor := cfg.ScaledTo(frameWidth)

	s := &SpeedCam{
		cfg:   scaledCfg,
		pipe:  pipeline.New(scaledCfg),
		trail: tracker.NewTrail(90),
		font:  render.DefaultFont(),
	}

	if factor != 1.0 {
		s.resize = image.Pt(cfg.DownsizeVideo,
			int(float64(frameHeight)*factor))
		log.Printf("Downsizing video to %dx%d, measurement lines at %d/%d",
			s.resize.X, s.resize.Y, scaledCfg.LeftCoordinate,
			scaledCfg.RightCoordinate)
	}

	var err error
	s.detector, err = detect.NewDetector(modelFile, labelFile, confThreshold)

	if err != nil {
		return nil, fmt.Errorf("error creating detector: %w", err)
	}

	return s, nil
}

// Close releases the detector and video writer resources
func (s *SpeedCam) Close() {

	s.detector.Close()

	if s.writer != nil {
		s.writer.Close()
	}
}

// FrameSize returns the pixel size of the frames fed through the
// pipeline after any resizing
func (s *SpeedCam) FrameSize(frameWidth, frameHeight int) (int, int) {

	if s.resize.X > 0 {
		return s.resize.X, s.resize.Y
	}

	return frameWidth, frameHeight
}

// ProcessFrame runs detection and measurement on a single video frame
// and annotates it when an output video was requested
func (s *SpeedCam) ProcessFrame(img gocv.Mat, frameNum int) error {

	frame := img

	if s.resize.X > 0 {
		frame = gocv.NewMat()
		defer frame.Close()
		gocv.Resize(img, &frame, s.resize, 0, 0, gocv.InterpolationArea)
	}

	detections, err := s.detector.Detect(frame, frameNum)

	if err != nil {
		return fmt.Errorf("error detecting vehicles on frame %d: %w",
			frameNum, err)
	}

	update, err := s.pipe.ProcessFrame(frameNum, detections)

	if err != nil {
		return err
	}

	for _, track := range update.Tracks {
		s.trail.Add(track)
	}

	for _, m := range update.Completed {
		s.measurements = append(s.measurements, m)
		log.Printf("Track %d completed measurement: %.1f km/h over %d frames",
			m.TrackID, m.SpeedKMH, m.FrameCount)
	}

	if s.writer != nil {
		s.Annotate(&frame, update)
		s.writer.Write(frame)
	}

	return nil
}

// Annotate draws the measurement lines, vehicle boxes, movement trails
// and speed labels onto the frame
func (s *SpeedCam) Annotate(img *gocv.Mat, update pipeline.FrameUpdate) {

	render.MeasureLines(img, s.cfg, s.font, 1)
	render.TrackBoxes(img, update.Tracks, s.font, 2)
	render.Trail(img, update.Tracks, s.trail, render.DefaultTrailStyle())
	render.CrossingFlash(img, update.Events, 3)
	render.SpeedLabels(img, update.Tracks, s.measurements, s.font)
}

// outputText prints the measurement results in human readable form
func outputText(result pipeline.Result, units string) {

	fmt.Printf("Run %s: %d frames, %d detections, %d tracks, took %s\n",
		result.RunID, result.FramesProcessed, result.DetectionCount,
		result.TrackCount, result.ProcessingTime)

	for _, m := range result.Measurements {
		fmt.Printf("  Track %d: %.2f %s (frames %d-%d, %.2fs, confidence %.2f)\n",
			m.TrackID, speed.ConvertSpeed(m.SpeedMS, units), units,
			m.LeftCrossingFrame, m.RightCrossingFrame, m.TimeSeconds,
			m.Confidence)
	}

	if result.Summary.Count > 1 {
		fmt.Printf("  Mean %.2f km/h, stddev %.2f, min %.2f, max %.2f over %d vehicles\n",
			result.Summary.MeanKMH, result.Summary.StdDevKMH,
			result.Summary.MinKMH, result.Summary.MaxKMH,
			result.Summary.Count)
	}
}

// outputJSON prints the full run result as indented JSON
func outputJSON(result pipeline.Result) error {

	data, err := json.MarshalIndent(result, "", "  ")

	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

// outputCSV prints the measurements as CSV rows
func outputCSV(result pipeline.Result, units string) error {

	w := csv.NewWriter(os.Stdout)

	err := w.Write([]string{"track_id", "speed_" + units, "frame_count",
		"time_seconds", "left_crossing_frame", "right_crossing_frame",
		"confidence"})

	if err != nil {
		return err
	}

	for _, m := range result.Measurements {

		err = w.Write([]string{
			strconv.Itoa(m.TrackID),
			strconv.FormatFloat(speed.ConvertSpeed(m.SpeedMS, units), 'f', 2, 64),
			strconv.Itoa(m.FrameCount),
			strconv.FormatFloat(m.TimeSeconds, 'f', 3, 64),
			strconv.Itoa(m.LeftCrossingFrame),
			strconv.Itoa(m.RightCrossingFrame),
			strconv.FormatFloat(m.Confidence, 'f', 3, 64),
		})

		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	configFile := flag.String("c", "config.yaml", "YAML measurement configuration file")
	vidFile := flag.String("v", "traffic.mp4", "Video file to measure vehicle speeds on")
	modelFile := flag.String("m", "../data/yolov5s-640.onnx", "YOLO ONNX model file")
	labelFile := flag.String("l", "../data/coco_80_labels_list.txt", "Text file containing model labels")
	outFile := flag.String("o", "", "Output annotated video file, leave empty to skip")
	dbFile := flag.String("d", "", "Sqlite database file to store run results in, leave empty to skip")
	format := flag.String("f", "text", "Result output format, text, json, or csv")
	units := flag.String("u", speed.KPH, "Speed display units, mps, mph, kmph, or kph")
	confThreshold := flag.Float64("t", detect.DefaultConfidenceThreshold, "Minimum detection confidence")

	flag.Parse()

	if !speed.IsValidUnit(*units) {
		log.Fatalf("Invalid units %q, must be one of %v", *units, speed.ValidUnits)
	}

	cfg, err := speedcam.LoadConfig(*configFile)

	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// open handle to read frames of video file
	video, err := gocv.VideoCaptureFile(*vidFile)

	if err != nil {
		log.Fatalf("Error opening video file: %v", err)
	}

	defer video.Close()

	frameWidth := int(video.Get(gocv.VideoCaptureFrameWidth))
	frameHeight := int(video.Get(gocv.VideoCaptureFrameHeight))

	cam, err := NewSpeedCam(cfg, frameWidth, frameHeight, *modelFile,
		*labelFile, *confThreshold)

	if err != nil {
		log.Fatalf("Error creating speed cam: %v", err)
	}

	defer cam.Close()

	if *outFile != "" {

		outW, outH := cam.FrameSize(frameWidth, frameHeight)

		cam.writer, err = gocv.VideoWriterFile(*outFile, "mp4v", cfg.FPS,
			outW, outH, true)

		if err != nil {
			log.Fatalf("Error creating output video: %v", err)
		}
	}

	img := gocv.NewMat()
	defer img.Close()

	start := time.Now()
	frameNum := 0

	for {
		if ok := video.Read(&img); !ok {
			// reached last video frame
			break
		}

		if img.Empty() {
			continue
		}

		frameNum++

		err = cam.ProcessFrame(img, frameNum)

		if err != nil {
			log.Printf("Error processing frame %d: %v", frameNum, err)
		}
	}

	result, err := cam.pipe.Finish()
	result.ProcessingTime = time.Since(start)

	if errors.Is(err, pipeline.ErrNoVehicleDetected) ||
		errors.Is(err, pipeline.ErrIncompleteCorridor) {
		log.Printf("No speed measured: %v", err)
	} else if err != nil {
		log.Fatalf("Error finishing run: %v", err)
	}

	switch *format {
	case "json":
		err = outputJSON(result)
	case "csv":
		err = outputCSV(result, *units)
	default:
		outputText(result, *units)
	}

	if err != nil {
		log.Fatalf("Error writing results: %v", err)
	}

	if *dbFile != "" {

		db, err := store.Open(*dbFile)

		if err != nil {
			log.Fatalf("Error opening results database: %v", err)
		}

		defer db.Close()

		err = db.SaveRun(result, *vidFile)

		if err != nil {
			log.Fatalf("Error storing run results: %v", err)
		}

		log.Printf("Run %s stored in %s", result.RunID, *dbFile)
	}
}
