package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/swdee/go-speedcam/speed"
	"github.com/swdee/go-speedcam/tracker"
)

// SpeedLabels draws the measured speed underneath each vehicle that has
// completed the measurement corridor
func SpeedLabels(img *gocv.Mat, tracks []*tracker.Track,
	measurements []speed.Measurement, font Font) {

	byTrack := make(map[int]speed.Measurement)

	for _, m := range measurements {
		byTrack[m.TrackID] = m
	}

	for _, track := range tracks {

		m, ok := byTrack[track.GetTrackID()]

		if !ok {
			continue
		}

		last, ok := track.LastDetection()

		if !ok {
			continue
		}

		text := fmt.Sprintf("%.1f km/h", m.SpeedKMH)

		gocv.PutTextWithParams(img, text,
			image.Pt(last.Box.X1, last.Box.Y2+16),
			font.Face, font.Scale, TrackColor(track.GetTrackID()),
			font.Thickness, font.LineType, false)
	}
}
