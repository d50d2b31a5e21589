package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/gallerywall/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each hanging label's QR code.
// Positions are measured in inches from the wall's top-left corner.
type LabelInfo struct {
	FrameID    string  `json:"frame_id"`
	FrameLabel string  `json:"label"`
	Width      float64 `json:"width_in"`
	Height     float64 `json:"height_in"`
	Layout     int     `json:"layout"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_in"`
	Y          float64 `json:"y_in"`
	NailX      float64 `json:"nail_x_in"`
	NailY      float64 `json:"nail_y_in"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// HangingPoint returns where the nail goes for a frame hung from a centered
// wire: the middle of its top edge.
func HangingPoint(f model.PlacedFrame) (x, y float64) {
	return f.X + f.Width/2, f.Y
}

// ExportLabels writes a sheet of QR-coded labels, one per frame of the given
// solution, to stick on the frame backs before hanging. layout is the
// 1-based number of the solution as shown in the layout PDF.
func ExportLabels(path string, in model.Input, sol model.LayoutSolution, layout int) error {
	labels := CollectLabelInfos(in, sol, layout)
	if len(labels) == 0 {
		return fmt.Errorf("no frames placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.FrameLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.Layout, n)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	frameLabel := info.FrameLabel
	if pdf.GetStringWidth(frameLabel) > textW {
		for len(frameLabel) > 0 && pdf.GetStringWidth(frameLabel+"...") > textW {
			frameLabel = frameLabel[:len(frameLabel)-1]
		}
		frameLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, frameLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%g x %g in", info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	nail := fmt.Sprintf("Nail %.1f in right, %.1f in down", info.NailX, info.NailY)
	pdf.CellFormat(textW, 3, nail, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Hang rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos builds the label data for every frame of a solution.
func CollectLabelInfos(in model.Input, sol model.LayoutSolution, layout int) []LabelInfo {
	inv := newInventoryIndex(in.Inventory)
	labels := make([]LabelInfo, 0, len(sol.Frames))
	for _, f := range sol.Frames {
		nx, ny := HangingPoint(f)
		labels = append(labels, LabelInfo{
			FrameID:    f.ID,
			FrameLabel: inv.label(f),
			Width:      f.Width,
			Height:     f.Height,
			Layout:     layout,
			Rotated:    f.Rotation == 90,
			X:          f.X,
			Y:          f.Y,
			NailX:      nx,
			NailY:      ny,
		})
	}
	return labels
}
