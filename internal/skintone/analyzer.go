// Package skintone estimates a skin colour from a photo and maps it to a clothing palette.
//
// Two estimates are averaged: the mean of pixels inside a YCbCr skin box, and the
// k-means cluster centre closest to mid brightness on a downscaled copy.
package skintone

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/nfnt/resize"

	"github.com/and161185/tonefit/internal/errs"
)

// YCbCr skin box (JFIF scale).
const (
	crMin, crMax = 133, 173
	cbMin, cbMax = 77, 127
)

// MaxPixels caps the declared dimensions of an upload; larger images are rejected before decoding.
const MaxPixels = 40_000_000

// Result is the outcome of analysing one image.
type Result struct {
	Color   color.RGBA
	Tone    Tone
	Palette []string
}

// Hex renders the detected colour as #rrggbb.
func (r Result) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", r.Color.R, r.Color.G, r.Color.B)
}

// Analyzer holds tuning knobs; the zero value is not usable, use New.
type Analyzer struct {
	minSkinPixels int
	minCluster    int
	clusters      int
	maxIter       int
	sampleSide    uint
	workSide      uint
	maxPixels     int
	seed          uint64
}

// New returns an Analyzer with the default tuning.
func New() *Analyzer {
	return &Analyzer{
		minSkinPixels: 100,
		minCluster:    50,
		clusters:      4,
		maxIter:       20,
		sampleSide:    150,
		workSide:      1024,
		maxPixels:     MaxPixels,
		seed:          42,
	}
}

// Analyze decodes an image from r and estimates its skin tone.
func (a *Analyzer) Analyze(r io.Reader) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errs.ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > a.maxPixels/cfg.Height {
		return Result{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", errs.ErrInvalidImage, cfg.Width, cfg.Height, a.maxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errs.ErrInvalidImage, err)
	}
	return a.AnalyzeImage(img)
}

// AnalyzeImage estimates the skin tone of an already decoded image.
// Images larger than the working size are scanned on a thumbnail.
func (a *Analyzer) AnalyzeImage(img image.Image) (Result, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Result{}, fmt.Errorf("%w: empty image", errs.ErrInvalidImage)
	}
	img = resize.Thumbnail(a.workSide, a.workSide, img, resize.Bilinear)

	maskColour, ok := a.maskEstimate(img)
	if !ok {
		return Result{}, errs.ErrNoSkinDetected
	}
	clusterColour := a.clusterEstimate(img, maskColour)

	final := rgb{
		math.Trunc((maskColour[0] + clusterColour[0]) / 2),
		math.Trunc((maskColour[1] + clusterColour[1]) / 2),
		math.Trunc((maskColour[2] + clusterColour[2]) / 2),
	}
	c := color.RGBA{R: clamp8(final[0]), G: clamp8(final[1]), B: clamp8(final[2]), A: 0xff}
	tone := Classify(c.R, c.G, c.B)
	return Result{Color: c, Tone: tone, Palette: Palette(tone)}, nil
}

// maskEstimate averages pixels inside the skin box. With too few skin pixels it falls
// back to the centre third of the image, and reports false if that region is not skin-like either.
func (a *Analyzer) maskEstimate(img image.Image) (rgb, bool) {
	b := img.Bounds()
	var sum rgb
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := pixel(img, x, y)
			if isSkin(p) {
				sum[0] += p[0]
				sum[1] += p[1]
				sum[2] += p[2]
				n++
			}
		}
	}
	if n > a.minSkinPixels || (n > 0 && n == b.Dx()*b.Dy()) {
		return truncate(rgb{sum[0] / float64(n), sum[1] / float64(n), sum[2] / float64(n)}), true
	}

	centre := image.Rect(
		b.Min.X+b.Dx()/3, b.Min.Y+b.Dy()/3,
		b.Min.X+2*b.Dx()/3, b.Min.Y+2*b.Dy()/3,
	)
	if centre.Empty() {
		centre = b
	}
	sum, n = rgb{}, 0
	for y := centre.Min.Y; y < centre.Max.Y; y++ {
		for x := centre.Min.X; x < centre.Max.X; x++ {
			p := pixel(img, x, y)
			sum[0] += p[0]
			sum[1] += p[1]
			sum[2] += p[2]
			n++
		}
	}
	mean := truncate(rgb{sum[0] / float64(n), sum[1] / float64(n), sum[2] / float64(n)})
	return mean, isSkin(mean)
}

// clusterEstimate runs k-means over a downscaled copy and returns the centre closest to
// mid brightness. It returns fallback when too few usable pixels remain.
func (a *Analyzer) clusterEstimate(img image.Image, fallback rgb) rgb {
	small := resize.Resize(a.sampleSide, a.sampleSide, img, resize.Bilinear)
	sb := small.Bounds()

	points := make([]rgb, 0, sb.Dx()*sb.Dy())
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			p := pixel(small, x, y)
			if br := p.brightness(); br > 30 && br < 240 {
				points = append(points, p)
			}
		}
	}
	if len(points) <= a.minCluster {
		return fallback
	}

	centres := kmeans(points, a.clusters, a.maxIter, a.seed)
	best, bestGap := -1, math.Inf(1)
	for i, c := range centres {
		br := c.brightness()
		if br <= 60 || br >= 220 {
			continue
		}
		if gap := math.Abs(br - 140); gap < bestGap {
			best, bestGap = i, gap
		}
	}
	if best < 0 {
		return truncate(centres[0])
	}
	return truncate(centres[best])
}

func pixel(img image.Image, x, y int) rgb {
	r, g, b, _ := img.At(x, y).RGBA()
	return rgb{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

func isSkin(p rgb) bool {
	_, cb, cr := color.RGBToYCbCr(clamp8(p[0]), clamp8(p[1]), clamp8(p[2]))
	return cr >= crMin && cr <= crMax && cb >= cbMin && cb <= cbMax
}

func truncate(c rgb) rgb {
	return rgb{math.Trunc(c[0]), math.Trunc(c[1]), math.Trunc(c[2])}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
