// Package detect provides the external object detector collaborator: a
// YOLO vehicle detector running on the gocv DNN module.  It produces
// per-frame detection lists already filtered to vehicle classes and the
// confidence threshold, ready to feed the measurement pipeline.
package detect

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/swdee/go-speedcam/tracker"
)

const (
	// Model input tensor size for YOLOv5 ONNX models
	InputWidth  = 640
	InputHeight = 640

	// DefaultConfidenceThreshold below which detections are discarded
	DefaultConfidenceThreshold = 0.5

	// nmsThreshold is the IoU threshold used by non-maximum suppression
	nmsThreshold = 0.45
)

// VehicleClasses are the COCO class IDs treated as vehicles
var VehicleClasses = map[int]bool{
	2: true, // car
	3: true, // motorcycle
	5: true, // bus
	7: true, // truck
}

// Detector runs YOLO inference on video frames using the gocv DNN module
// and converts the raw network output into vehicle Detections in frame
// pixel coordinates
type Detector struct {
	// net is the loaded ONNX model
	net gocv.Net
	// labels are the class names the model was trained on
	labels []string
	// confThreshold is the minimum detection confidence
	confThreshold float32
	// classes restricts results to the given class IDs
	classes map[int]bool
}

// NewDetector loads the YOLO ONNX model and class labels and returns a
// vehicle Detector.  A confThreshold of 0 or less selects
// DefaultConfidenceThreshold.
func NewDetector(modelFile, labelFile string, confThreshold float64) (*Detector, error) {

	net := gocv.ReadNet(modelFile, "")

	if net.Empty() {
		return nil, fmt.Errorf("error loading model file %s", modelFile)
	}

	labels, err := LoadLabels(labelFile)

	if err != nil {
		net.Close()
		return nil, fmt.Errorf("error loading model labels: %w", err)
	}

	if confThreshold <= 0 {
		confThreshold = DefaultConfidenceThreshold
	}

	return &Detector{
		net:           net,
		labels:        labels,
		confThreshold: float32(confThreshold),
		classes:       VehicleClasses,
	}, nil
}

// LimitClasses restricts detection results to the given class IDs
// instead of the default vehicle classes
func (d *Detector) LimitClasses(classIDs ...int) {

	d.classes = make(map[int]bool)

	for _, id := range classIDs {
		d.classes[id] = true
	}
}

// Close releases the loaded network
func (d *Detector) Close() error {
	return d.net.Close()
}

// Detect runs inference on the given frame and returns the vehicle
// detections found, with bounding boxes scaled back to frame pixel
// coordinates
func (d *Detector) Detect(img gocv.Mat, frameNumber int) ([]tracker.Detection, error) {

	if img.Empty() {
		return nil, fmt.Errorf("empty frame %d", frameNumber)
	}

	blob := gocv.BlobFromImage(img, 1.0/255.0,
		image.Pt(InputWidth, InputHeight),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	return d.decode(output, img.Cols(), img.Rows(), frameNumber), nil
}

// decode converts the raw YOLO output tensor into filtered detections.
// The output layout is one row per candidate box holding
// [cx, cy, w, h, box confidence, per-class scores...] in model input
// coordinates.
func (d *Detector) decode(output gocv.Mat, frameWidth, frameHeight,
	frameNumber int) []tracker.Detection {

	sizes := output.Size()

	if len(sizes) < 3 {
		return nil
	}

	rows := sizes[1]
	cols := sizes[2]

	data := output.Reshape(1, rows)
	defer data.Close()

	// scale factor between model input size and the original frame
	scaleX := float32(frameWidth) / float32(InputWidth)
	scaleY := float32(frameHeight) / float32(InputHeight)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for r := 0; r < rows; r++ {

		boxConf := data.GetFloatAt(r, 4)

		if boxConf < d.confThreshold {
			continue
		}

		// find the best scoring class
		bestClass := 0
		bestScore := float32(0)

		for c := 5; c < cols; c++ {
			if score := data.GetFloatAt(r, c); score > bestScore {
				bestScore = score
				bestClass = c - 5
			}
		}

		confidence := boxConf * bestScore

		if confidence < d.confThreshold || !d.classes[bestClass] {
			continue
		}

		// center format box in model coordinates
		cx := data.GetFloatAt(r, 0)
		cy := data.GetFloatAt(r, 1)
		w := data.GetFloatAt(r, 2)
		h := data.GetFloatAt(r, 3)

		x1 := int((cx - w/2) * scaleX)
		y1 := int((cy - h/2) * scaleY)
		x2 := int((cx + w/2) * scaleX)
		y2 := int((cy + h/2) * scaleY)

		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		scores = append(scores, confidence)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return nil
	}

	keep := gocv.NMSBoxes(boxes, scores, d.confThreshold, nmsThreshold)

	var detections []tracker.Detection

	for _, idx := range keep {

		box := boxes[idx]

		detections = append(detections, tracker.NewDetection(
			frameNumber,
			tracker.NewBoundingBox(box.Min.X, box.Min.Y, box.Max.X, box.Max.Y),
			float64(scores[idx]),
			classIDs[idx],
			d.className(classIDs[idx]),
		))
	}

	return detections
}

// className returns the label for the given class ID
func (d *Detector) className(classID int) string {

	if classID < 0 || classID >= len(d.labels) {
		return "unknown"
	}

	return d.labels[classID]
}
