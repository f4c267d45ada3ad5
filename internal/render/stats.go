package render

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// MeanLuminance returns the mean Rec. 601 luma of img in [0,1].
func MeanLuminance(img *image.NRGBA) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	w, h := b.Dx(), b.Dy()
	lum := make([]float64, 0, w*h)
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			l := 0.299*float64(row[x]) + 0.587*float64(row[x+1]) + 0.114*float64(row[x+2])
			lum = append(lum, l/255)
		}
	}
	return stat.Mean(lum, nil)
}
