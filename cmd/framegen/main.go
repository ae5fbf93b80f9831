// Command framegen generates synthetic numbered frames as raw RGBA files in
// the layout the export command consumes. Development aid for exercising the
// pipeline without a real renderer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

func main() {
	var (
		outDir = flag.String("out", "tmp/frames", "output directory")
		count  = flag.Int("count", 120, "number of frames")
		width  = flag.Int("width", 640, "frame width")
		height = flag.Int("height", 360, "frame height")
	)
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		pixels := renderFrame(i, *count, *width, *height)
		filename := filepath.Join(*outDir, fmt.Sprintf("frame_%06d.rgba", i))
		if err := os.WriteFile(filename, pixels, 0644); err != nil {
			fmt.Printf("Error writing frame: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d frames (%dx%d) in %s\n", *count, *width, *height, *outDir)
}

// renderFrame draws a gradient that shifts over the sequence with the frame
// number centered on top, and returns the raw RGBA pixels.
func renderFrame(index, total, width, height int) []byte {
	dc := gg.NewContext(width, height)

	t := float64(index) / float64(total)
	grad := gg.NewLinearGradient(0, 0, float64(width), float64(height))
	grad.AddColorStop(0, color.RGBA{R: uint8(25 + 150*t), G: 25, B: 100, A: 255})
	grad.AddColorStop(1, color.RGBA{R: 25, G: 75, B: uint8(180 - 130*t), A: 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(fmt.Sprintf("%06d", index), float64(width)/2, float64(height)/2, 0.5, 0.5)

	// Flatten to raw RGBA bytes, converting if the backing image is not
	// already *image.RGBA.
	img := dc.Image()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	return rgba.Pix
}
