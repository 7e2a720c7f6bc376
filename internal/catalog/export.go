package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/tincture/internal/colour"
)

var csvHeader = []string{"red", "green", "blue", "luminance", "hue", "saturation", "lightness"}

// WriteCSV writes the catalog as CSV, one sample per row in luminance order.
func (c *Catalog) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, s := range c.samples {
		row := []string{
			strconv.Itoa(int(s.RGB.R)),
			strconv.Itoa(int(s.RGB.G)),
			strconv.Itoa(int(s.RGB.B)),
			strconv.FormatFloat(s.Luminance, 'g', -1, 64),
			strconv.FormatFloat(s.Hue, 'g', -1, 64),
			strconv.FormatFloat(s.Saturation, 'g', -1, 64),
			strconv.FormatFloat(s.Lightness, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXZ writes the catalog as xz-compressed CSV.
func (c *Catalog) WriteXZ(w io.Writer) error {
	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}

	if err := c.WriteCSV(xzw); err != nil {
		_ = xzw.Close()
		return err
	}

	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return nil
}

// ReadXZ loads a catalog written by WriteXZ. Annotations are recomputed from the RGB
// columns and the rows must already be in luminance order.
func ReadXZ(r io.Reader, step Step, minContrast float64) (*Catalog, error) {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	cr := csv.NewReader(xzr)
	cr.FieldsPerRecord = len(csvHeader)
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var samples []Sample
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sample: %w", err)
		}

		var channels [3]uint8
		for i := range channels {
			v, err := strconv.ParseUint(record[i], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q: %w", csvHeader[i], record[i], err)
			}
			channels[i] = uint8(v)
		}

		s := NewSample(colour.RGB{R: channels[0], G: channels[1], B: channels[2]})
		if n := len(samples); n > 0 && samples[n-1].Luminance > s.Luminance {
			return nil, fmt.Errorf("catalog rows out of luminance order at row %d", n+1)
		}
		samples = append(samples, s)
	}

	return &Catalog{
		samples:     samples,
		step:        step,
		minContrast: minContrast,
	}, nil
}
