package figure

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Columns = 4

	titleHeight  = 34
	labelHeight  = 40
	cellPadding  = 16
	titleSize    = 15
	labelSize    = 12
	MinCellPixel = 120
	// StandardRows is the row count of the eight diagnostic panels.
	StandardRows = 2

	MinWidth  = Columns * MinCellPixel
	MinHeight = StandardRows * MinCellPixel
)

// Composer draws panels on a fixed grid of Columns columns.
type Composer struct {
	Width  int
	Height int

	titleFace font.Face
	labelFace font.Face
}

func NewComposer(width, height int) (*Composer, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse figure font: %w", err)
	}

	return &Composer{
		Width:     width,
		Height:    height,
		titleFace: truetype.NewFace(parsed, &truetype.Options{Size: titleSize}),
		labelFace: truetype.NewFace(parsed, &truetype.Options{Size: labelSize}),
	}, nil
}

type cell struct {
	x, y, w, h float64
}

// Compose renders panels left to right, top to bottom.
func (c *Composer) Compose(panels []Panel) (image.Image, error) {
	if len(panels) == 0 {
		return nil, errors.New("no panels to compose")
	}

	rows := (len(panels) + Columns - 1) / Columns
	cellW := float64(c.Width) / Columns
	cellH := float64(c.Height) / float64(rows)
	if cellW < MinCellPixel || cellH < MinCellPixel {
		return nil, fmt.Errorf("figure %dx%d is too small for %d panels", c.Width, c.Height, len(panels))
	}

	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(color.White)
	dc.Clear()

	for i, panel := range panels {
		area := cell{
			x: float64(i%Columns) * cellW,
			y: float64(i/Columns) * cellH,
			w: cellW,
			h: cellH,
		}

		dc.SetFontFace(c.titleFace)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(panel.Title, area.x+area.w/2, area.y+titleHeight/2, 0.5, 0.5)

		var err error
		switch panel.Kind {
		case ImagePanel:
			err = c.drawImage(dc, area, panel)
		case HistogramPanel:
			err = c.drawHistogram(dc, area, panel)
		default:
			err = fmt.Errorf("unknown panel kind %d", panel.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", panel.Title, err)
		}
	}

	return dc.Image(), nil
}

func (c *Composer) drawImage(dc *gg.Context, area cell, panel Panel) error {
	if panel.Image == nil {
		return errors.New("missing image")
	}

	maxW := int(area.w) - 2*cellPadding
	maxH := int(area.h) - titleHeight - cellPadding
	fitted := fitImage(panel.Image, maxW, maxH)

	dc.DrawImageAnchored(fitted, int(area.x+area.w/2), int(area.y+titleHeight+float64(maxH)/2), 0.5, 0.5)
	return nil
}

// fitImage scales img to fit within maxW×maxH, keeping the aspect ratio.
// Upscaling uses nearest neighbour so single pixels stay sharp.
func fitImage(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	if bounds.Empty() {
		return img
	}
	if bounds.Dx() <= maxW && bounds.Dy() <= maxH {
		scale := math.Min(float64(maxW)/float64(bounds.Dx()), float64(maxH)/float64(bounds.Dy()))
		w := int(float64(bounds.Dx()) * scale)
		h := int(float64(bounds.Dy()) * scale)
		return imaging.Resize(img, max(w, 1), max(h, 1), imaging.NearestNeighbor)
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

func (c *Composer) drawHistogram(dc *gg.Context, area cell, panel Panel) error {
	if len(panel.Counts) == 0 {
		return errors.New("missing histogram counts")
	}

	fill, err := barColor(panel.Color)
	if err != nil {
		return err
	}

	plotX := area.x + cellPadding + labelHeight
	plotY := area.y + titleHeight
	plotW := area.w - 2*cellPadding - labelHeight
	plotH := area.h - titleHeight - labelHeight - cellPadding

	peak := 0.0
	for _, v := range panel.Counts {
		peak = math.Max(peak, v)
	}

	barW := plotW / float64(len(panel.Counts))
	dc.SetColor(fill)
	if peak > 0 {
		for i, v := range panel.Counts {
			if v <= 0 {
				continue
			}
			h := v / peak * plotH
			dc.DrawRectangle(plotX+float64(i)*barW, plotY+plotH-h, barW, h)
		}
		dc.Fill()
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(plotX, plotY, plotW, plotH)
	dc.Stroke()

	dc.SetFontFace(c.labelFace)
	tickY := plotY + plotH + 10
	dc.DrawStringAnchored(formatTick(panel.Range.Lo), plotX, tickY, 0.5, 0.5)
	dc.DrawStringAnchored(formatTick(panel.Range.Hi), plotX+plotW, tickY, 0.5, 0.5)
	dc.DrawStringAnchored(formatTick(peak), plotX-4, plotY, 1, 0.5)
	dc.DrawStringAnchored("0", plotX-4, plotY+plotH, 1, 0.5)

	dc.DrawStringAnchored(panel.XLabel, plotX+plotW/2, plotY+plotH+labelHeight/2+8, 0.5, 0.5)

	labelX := area.x + cellPadding
	labelY := plotY + plotH/2
	dc.Push()
	dc.RotateAbout(-math.Pi/2, labelX, labelY)
	dc.DrawStringAnchored(panel.YLabel, labelX, labelY, 0.5, 0.5)
	dc.Pop()

	return nil
}

// barColor blends the series color with white at the bar alpha.
func barColor(hex string) (colorful.Color, error) {
	base, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("bad bar color %q: %w", hex, err)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return white.BlendRgb(base, barAlpha).Clamped(), nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
