package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/pipeline"
	"github.com/swdee/go-speedcam/tracker"
)

// frameRecord is one frame's worth of saved detections
type frameRecord struct {
	Frame      int               `json:"frame"`
	Detections []detectionRecord `json:"detections"`
}

// detectionRecord is a single saved detection box
type detectionRecord struct {
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
	Confidence float64 `json:"confidence"`
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name"`
}

// fileStream replays saved per-frame detections through the measurement
// pipeline
type fileStream struct {
	frames []frameRecord
	pos    int
}

// loadStream reads the saved detections JSON file, a list of frame
// records in increasing frame order
func loadStream(file string) (*fileStream, error) {

	data, err := os.ReadFile(file)

	if err != nil {
		return nil, fmt.Errorf("error reading detections file: %w", err)
	}

	var frames []frameRecord

	err = json.Unmarshal(data, &frames)

	if err != nil {
		return nil, fmt.Errorf("error parsing detections file %s: %w", file, err)
	}

	return &fileStream{frames: frames}, nil
}

// Next returns the next frame's detections, or io.EOF once all frames
// have been replayed
func (s *fileStream) Next() (int, []tracker.Detection, error) {

	if s.pos >= len(s.frames) {
		return 0, nil, io.EOF
	}

	rec := s.frames[s.pos]
	s.pos++

	var detections []tracker.Detection

	for _, d := range rec.Detections {
		detections = append(detections, tracker.NewDetection(
			rec.Frame,
			tracker.NewBoundingBox(d.X1, d.Y1, d.X2, d.Y2),
			d.Confidence,
			d.ClassID,
			d.ClassName,
		))
	}

	return rec.Frame, detections, nil
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	configFile := flag.String("c", "config.yaml", "YAML measurement configuration file")
	detFile := flag.String("j", "detections.json", "JSON file of saved per-frame detections to replay")

	flag.Parse()

	cfg, err := speedcam.LoadConfig(*configFile)

	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	stream, err := loadStream(*detFile)

	if err != nil {
		log.Fatalf("Error loading detections: %v", err)
	}

	pipe := pipeline.New(cfg)

	result, err := pipe.Run(stream)

	if errors.Is(err, pipeline.ErrNoVehicleDetected) ||
		errors.Is(err, pipeline.ErrIncompleteCorridor) {
		log.Printf("No speed measured: %v", err)
	} else if err != nil {
		log.Fatalf("Error replaying detections: %v", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")

	if err != nil {
		log.Fatalf("Error encoding result: %v", err)
	}

	fmt.Println(string(data))
}
