package tracker

// Detection represents a single vehicle sighting in one video frame.
// Detections are created by the external object detector, already
// filtered to the vehicle classes and confidence threshold, and are
// never modified once created.
type Detection struct {
	// FrameNumber is the 1-based video frame the detection occurred in
	FrameNumber int
	// Box is the bounding box of the detected vehicle
	Box BoundingBox
	// Confidence is the detection confidence score between 0.0 and 1.0
	Confidence float64
	// ClassID is the model class ID of the object detected
	ClassID int
	// ClassName is the detected class name, eg: "car"
	ClassName string
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(frameNumber int, box BoundingBox, confidence float64,
	classID int, className string) Detection {

	return Detection{
		FrameNumber: frameNumber,
		Box:         box,
		Confidence:  confidence,
		ClassID:     classID,
		ClassName:   className,
	}
}
