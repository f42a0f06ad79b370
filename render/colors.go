package render

import "image/color"

var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 56, B: 56, A: 255}
	Green  = color.RGBA{R: 72, G: 249, B: 10, A: 255}
	Blue   = color.RGBA{R: 0, G: 24, B: 236, A: 255}
	Yellow = color.RGBA{R: 255, G: 178, B: 29, A: 255}
	Cyan   = color.RGBA{R: 0, G: 194, B: 255, A: 255}
	Purple = color.RGBA{R: 132, G: 56, B: 255, A: 255}
	Orange = color.RGBA{R: 255, G: 112, B: 31, A: 255}
	Pink   = color.RGBA{R: 255, G: 149, B: 200, A: 255}

	// trackColors is a list of colors cycled through per track ID so a
	// vehicle keeps the same color across frames
	trackColors = []color.RGBA{
		Red, Orange, Yellow, Green, Cyan, Blue, Purple, Pink,
		{R: 26, G: 147, B: 52, A: 255},
		{R: 44, G: 153, B: 168, A: 255},
		{R: 203, G: 56, B: 255, A: 255},
		{R: 100, G: 115, B: 255, A: 255},
	}
)

// TrackColor returns the display color assigned to the given track ID
func TrackColor(trackID int) color.RGBA {
	return trackColors[trackID%len(trackColors)]
}
