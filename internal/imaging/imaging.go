// internal/imaging/imaging.go
// Package imaging computes coarse semantic attributes from decoded pixel
// data. Every computation is a pure, stateless reduction; the only error
// mode is an image that cannot be decoded.
package imaging

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	brightLuminance = 180
	darkLuminance   = 100
	skinRatioFlag   = 0.10
)

// Info holds the technical measurements of a decoded image.
type Info struct {
	Filename    string  `json:"filename"`
	Format      string  `json:"format"`
	SizeKB      float64 `json:"size_kb"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Megapixels  float64 `json:"megapixels"`
	AspectRatio float64 `json:"aspect_ratio"`
	RMean       float64 `json:"r_avg"`
	GMean       float64 `json:"g_avg"`
	BMean       float64 `json:"b_avg"`
	Luminance   float64 `json:"luminance"`
}

// Attributes holds the heuristic semantic tags derived from pixel statistics.
type Attributes struct {
	Detected   []string `json:"detected"`
	HasPerson  bool     `json:"has_person"`
	ColorTemp  string   `json:"color_temp"`
	Brightness string   `json:"brightness"`
}

// Report combines technical measurements and semantic attributes.
type Report struct {
	Info
	Attributes
}

// AnalyzeFile decodes the image at path and produces a full report.
func AnalyzeFile(path string) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("could not open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return Report{}, fmt.Errorf("could not decode image: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		return Report{}, fmt.Errorf("could not stat image: %w", err)
	}

	stats := measure(img)
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	info := Info{
		Filename:    filepath.Base(path),
		Format:      format,
		SizeKB:      round1(float64(stat.Size()) / 1024),
		Width:       w,
		Height:      h,
		Megapixels:  round1(float64(w*h) / 1e6),
		AspectRatio: round2(float64(w) / float64(h)),
		RMean:       round1(stats.rMean),
		GMean:       round1(stats.gMean),
		BMean:       round1(stats.bMean),
		Luminance:   round1(stats.luminance()),
	}

	return Report{Info: info, Attributes: Analyze(img)}, nil
}

// Analyze derives semantic attributes from a decoded image.
func Analyze(img image.Image) Attributes {
	stats := measure(img)

	var detected []string

	hasPerson := stats.skinRatio > skinRatioFlag
	if hasPerson {
		detected = append(detected, "person")
	}

	colorTemp := "cool"
	if stats.rMean > stats.bMean {
		colorTemp = "warm"
		detected = append(detected, "warm tones")
	} else {
		detected = append(detected, "cool tones")
	}

	brightness := "medium"
	switch lum := stats.luminance(); {
	case lum > brightLuminance:
		brightness = "bright"
		detected = append(detected, "bright")
	case lum < darkLuminance:
		brightness = "dark"
		detected = append(detected, "dark")
	}

	return Attributes{
		Detected:   detected,
		HasPerson:  hasPerson,
		ColorTemp:  colorTemp,
		Brightness: brightness,
	}
}

// pixelStats accumulates the per-channel reductions in one pass.
type pixelStats struct {
	rMean, gMean, bMean float64
	skinRatio           float64
}

// luminance applies the Rec. 601 weighting to the channel means.
func (s pixelStats) luminance() float64 {
	return 0.299*s.rMean + 0.587*s.gMean + 0.114*s.bMean
}

func measure(img image.Image) pixelStats {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return pixelStats{}
	}

	var rSum, gSum, bSum uint64
	var skinCount int

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := uint8(r16 >> 8)
			g := uint8(g16 >> 8)
			b := uint8(b16 >> 8)
			rSum += uint64(r)
			gSum += uint64(g)
			bSum += uint64(b)
			if isSkinTone(r, g, b) {
				skinCount++
			}
		}
	}

	n := float64(total)
	return pixelStats{
		rMean:     float64(rSum) / n,
		gMean:     float64(gSum) / n,
		bMean:     float64(bSum) / n,
		skinRatio: float64(skinCount) / n,
	}
}

// isSkinTone applies the two fixed RGB threshold rules for probable skin.
func isSkinTone(r, g, b uint8) bool {
	if r <= g || r <= b {
		return false
	}
	if r > 95 && g > 40 && b > 20 {
		return true
	}
	return r > 150 && g > 100 && b > 60
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
