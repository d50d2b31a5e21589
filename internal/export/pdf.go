// Package export renders generated wall layouts to printable documents.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/gallerywall/internal/engine"
	"github.com/piwi3910/gallerywall/internal/model"
)

// frameColor represents an RGB color for a placed frame.
type frameColor struct {
	R, G, B int
}

// frameColors is indexed by inventory position so every copy of one frame
// size shares a color across pages.
var frameColors = []frameColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes one page per solution showing the wall, its obstacles and
// the placed frames, followed by a summary page comparing the solutions.
func ExportPDF(path string, in model.Input, solutions []model.LayoutSolution) error {
	if len(solutions) == 0 {
		return fmt.Errorf("no solutions to export")
	}
	if !(in.Wall.Width > 0 && in.Wall.Height > 0) {
		return fmt.Errorf("wall has no drawable size (%.2f x %.2f)", in.Wall.Width, in.Wall.Height)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	inv := newInventoryIndex(in.Inventory)
	for i, sol := range solutions {
		pdf.AddPage()
		renderLayoutPage(pdf, in, sol, inv, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, in, solutions)

	return pdf.OutputFileAndClose(path)
}

// inventoryIndex resolves a placed frame back to its inventory entry.
type inventoryIndex struct {
	frames []model.Frame
	pos    map[string]int
}

func newInventoryIndex(frames []model.Frame) inventoryIndex {
	idx := inventoryIndex{frames: frames, pos: make(map[string]int, len(frames))}
	for i, f := range frames {
		if _, dup := idx.pos[f.ID]; !dup {
			idx.pos[f.ID] = i
		}
	}
	return idx
}

// label returns the inventory label of a placement, or its size when the
// inventory entry has none.
func (idx inventoryIndex) label(p model.PlacedFrame) string {
	if i, ok := idx.pos[p.LibraryID]; ok && idx.frames[i].Label != "" {
		return idx.frames[i].Label
	}
	return fmt.Sprintf("%gx%g", p.Width, p.Height)
}

func (idx inventoryIndex) color(libraryID string) frameColor {
	i, ok := idx.pos[libraryID]
	if !ok {
		return frameColor{R: 158, G: 158, B: 158}
	}
	return frameColors[i%len(frameColors)]
}

// renderLayoutPage draws a single solution on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, in model.Input, sol model.LayoutSolution, inv inventoryIndex, num int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layout %d: %.1f x %.1f in wall", num, in.Wall.Width, in.Wall.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Frames: %d of %d | Coverage: %.1f%% | Spacing: %.1f in | Margin: %.1f in",
		sol.Score, in.TotalRequested(), coverage(in, sol), in.Config.Spacing, in.Config.Margin)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/in.Wall.Width, drawHeight/in.Wall.Height)
	canvasW := in.Wall.Width * scale
	canvasH := in.Wall.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Wall background
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawMarginOutline(pdf, in, scale, offsetX, offsetY)
	drawObstacles(pdf, in.Obstacles, scale, offsetX, offsetY)

	for _, f := range sol.Frames {
		col := inv.color(f.LibraryID)
		fw := f.Width * scale
		fh := f.Height * scale
		fx := offsetX + f.X*scale
		fy := offsetY + f.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(fx, fy, fw, fh, "FD")

		// Nail mark at the top center
		nx, ny := HangingPoint(f)
		pdf.SetFillColor(30, 30, 30)
		pdf.Circle(offsetX+nx*scale, offsetY+ny*scale, 0.6, "F")

		if fw > 15 && fh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(fw, fh))
			pdf.SetTextColor(0, 0, 0)

			label := inv.label(f)
			dims := fmt.Sprintf("%gx%g", f.Width, f.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < fw-2 {
				pdf.SetXY(fx+(fw-labelW)/2, fy+fh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if fh > 14 && dimsW < fw-2 {
				pdf.SetXY(fx+(fw-dimsW)/2, fy+fh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, in.Wall, offsetX, offsetY, canvasW, canvasH)
	drawFramesLegend(pdf, sol, inv, offsetY+canvasH+5)
}

// drawMarginOutline outlines the area frames may occupy.
func drawMarginOutline(pdf *fpdf.Fpdf, in model.Input, scale, offsetX, offsetY float64) {
	if in.Config.Margin <= 0 {
		return
	}
	inner := in.Wall.Inner(in.Config.Margin)
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	pdf.Rect(offsetX+inner.X*scale, offsetY+inner.Y*scale, inner.Width*scale, inner.Height*scale, "D")
	pdf.SetDashPattern([]float64{}, 0)
}

// drawObstacles renders the no-placement zones as hatched rectangles.
func drawObstacles(pdf *fpdf.Fpdf, obstacles []model.Obstacle, scale, offsetX, offsetY float64) {
	for _, o := range obstacles {
		ox := offsetX + o.X*scale
		oy := offsetY + o.Y*scale
		ow := o.Width * scale
		oh := o.Height * scale

		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(ox, oy, ow, oh, "FD")

		drawHatchPattern(pdf, ox, oy, ow, oh)

		label := o.Label
		if label == "" {
			label = "OBSTACLE"
		}
		pdf.SetFont("Helvetica", "B", 6)
		if labelW := pdf.GetStringWidth(label); ow > labelW+2 && oh > 8 {
			pdf.SetTextColor(180, 0, 0)
			pdf.SetXY(ox+(ow-labelW)/2, oy+oh/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark it as blocked.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds wall width and height labels outside the canvas.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, wall model.Wall, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%g in", wall.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%g in", wall.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawFramesLegend lists each inventory entry used on the page with its count.
func drawFramesLegend(pdf *fpdf.Fpdf, sol model.LayoutSolution, inv inventoryIndex, startY float64) {
	if len(sol.Frames) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Frames placed:", "", 0, "L", false, 0, "")

	var order []string
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, f := range sol.Frames {
		if counts[f.LibraryID] == 0 {
			order = append(order, f.LibraryID)
			labels[f.LibraryID] = inv.label(f)
		}
		counts[f.LibraryID]++
	}

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	for _, id := range order {
		col := inv.color(id)
		label := fmt.Sprintf("%s x%d", labels[id], counts[id])
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page comparing every solution.
func renderSummaryPage(pdf *fpdf.Fpdf, in model.Input, solutions []model.LayoutSolution) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Gallery Wall Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Request", "", 0, "L", false, 0, "")
	y += 9

	requestItems := []struct {
		label string
		value string
	}{
		{"Wall", fmt.Sprintf("%g x %g in", in.Wall.Width, in.Wall.Height)},
		{"Frames Requested", fmt.Sprintf("%d", in.TotalRequested())},
		{"Obstacles", fmt.Sprintf("%d", len(in.Obstacles))},
		{"Algorithm", string(in.Config.Algorithm)},
		{"Spacing / Margin", fmt.Sprintf("%g / %g in", in.Config.Spacing, in.Config.Margin)},
		{"Place Every Frame", fmt.Sprintf("%t", in.Config.ForceAll)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range requestItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layouts", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 40, 40, 40, 60}
	headers := []string{"Layout", "Frames", "Missing", "Coverage", "Block Size"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	total := in.TotalRequested()
	for i, sol := range solutions {
		// Keep the table on the page
		if y > pageHeight-marginBottom-10 {
			break
		}
		w, h := blockSize(sol.Frames)
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", sol.Score),
			fmt.Sprintf("%d", max(total-sol.Score, 0)),
			fmt.Sprintf("%.1f%%", coverage(in, sol)),
			fmt.Sprintf("%.1f x %.1f in", w, h),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Gallery Wall Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// coverage is the share of the available wall area the solution's frames cover.
func coverage(in model.Input, sol model.LayoutSolution) float64 {
	avail := engine.AvailableArea(in)
	if avail <= 0 {
		return 0
	}
	used := 0.0
	for _, f := range sol.Frames {
		used += f.Width * f.Height
	}
	return used / avail * 100
}

// blockSize is the width and height of the bounding box around all frames.
func blockSize(frames []model.PlacedFrame) (float64, float64) {
	if len(frames) == 0 {
		return 0, 0
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, f := range frames {
		minX = math.Min(minX, f.X)
		minY = math.Min(minY, f.Y)
		maxX = math.Max(maxX, f.X+f.Width)
		maxY = math.Max(maxY, f.Y+f.Height)
	}
	return maxX - minX, maxY - minY
}
