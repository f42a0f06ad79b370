package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/swdee/go-speedcam/tracker"
)

// boxLabel records the rendering details of a text label drawn on top of
// a bounding box
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// TrackBoxes renders the bounding boxes around tracked vehicles with a
// class name and track ID label.  Tracks without detections are skipped.
func TrackBoxes(img *gocv.Mat, tracks []*tracker.Track, font Font,
	lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0)

	for _, track := range tracks {

		last, ok := track.LastDetection()

		if !ok {
			continue
		}

		box := last.Box
		useClr := TrackColor(track.GetTrackID())

		// draw rectangle around the vehicle
		rect := image.Rect(box.X1, box.Y1, box.X2, box.Y2)
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%s %d %.2f", last.ClassName,
			track.GetTrackID(), last.Confidence)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		centerX := (box.X1 + box.X2) / 2

		// adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, box.Y1-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			box.Y1-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, box.Y1)

		boxLabels = append(boxLabels, boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		})
	}

	// draw all precalculated box labels so they are the top most layer
	// on the image and don't get overlapped by other annotations
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
