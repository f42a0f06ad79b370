package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	speedcam "github.com/swdee/go-speedcam"
	"github.com/swdee/go-speedcam/crossing"
)

// MeasureLines draws the two vertical measurement lines over the full
// frame height, the left line in green and the right line in red, with
// their pixel positions labelled at the top
func MeasureLines(img *gocv.Mat, cfg speedcam.Configuration, font Font,
	thickness int) {

	h := img.Rows()

	gocv.Line(img, image.Pt(cfg.LeftCoordinate, 0),
		image.Pt(cfg.LeftCoordinate, h), Green, thickness)

	gocv.Line(img, image.Pt(cfg.RightCoordinate, 0),
		image.Pt(cfg.RightCoordinate, h), Red, thickness)

	gocv.PutTextWithParams(img, fmt.Sprintf("L %d", cfg.LeftCoordinate),
		image.Pt(cfg.LeftCoordinate+4, 16),
		font.Face, font.Scale, Green, font.Thickness, font.LineType, false)

	gocv.PutTextWithParams(img, fmt.Sprintf("R %d", cfg.RightCoordinate),
		image.Pt(cfg.RightCoordinate+4, 16),
		font.Face, font.Scale, Red, font.Thickness, font.LineType, false)
}

// CrossingFlash highlights the measurement lines crossed on this frame
// by redrawing them thicker in the crossing vehicle's track color, so
// the crossing frame stands out when stepping through annotated video
func CrossingFlash(img *gocv.Mat, events []crossing.Event, thickness int) {

	h := img.Rows()

	for _, ev := range events {
		gocv.Line(img, image.Pt(ev.CoordinateValue, 0),
			image.Pt(ev.CoordinateValue, h),
			TrackColor(ev.TrackID), thickness*3)
	}
}
