package image

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/jmylchreest/tincture/internal/colour"
)

// DefaultClusters is the number of k-means clusters used to find dominant colours.
const DefaultClusters = 8

// minSeedSaturation is the saturation a cluster needs to be preferred over heavier grey ones.
const minSeedSaturation = 0.2

// ContentSeed hashes the image dimensions and a grid of pixels into a random seed, so the
// same picture always clusters the same way wherever it is stored.
func ContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, errors.New("image cannot be nil")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// About 100x100 samples is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixel := make([]byte, 4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixel[0] = byte(r >> 8)
			pixel[1] = byte(g >> 8)
			pixel[2] = byte(b >> 8)
			pixel[3] = byte(a >> 8)
			hasher.Write(pixel)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion is safe
}

// SeedColour returns the colour to build a palette from: the heaviest dominant colour with
// some saturation, or the heaviest overall when the image is nearly grey.
func SeedColour(img image.Image, clusters int) (colour.RGB, error) {
	if clusters <= 0 {
		clusters = DefaultClusters
	}

	seed, err := ContentSeed(img)
	if err != nil {
		return colour.RGB{}, err
	}

	dominant, err := colour.NewKMeansExtractor(seed).Dominant(img, clusters)
	if err != nil {
		return colour.RGB{}, fmt.Errorf("failed to extract dominant colours: %w", err)
	}
	if len(dominant) == 0 {
		return colour.RGB{}, errors.New("image has no colours")
	}

	for _, wc := range dominant {
		if _, s, _ := colour.RGBToHSL(wc.RGB); s >= minSeedSaturation {
			return wc.RGB, nil
		}
	}
	return dominant[0].RGB, nil
}
