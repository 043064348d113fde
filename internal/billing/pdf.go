// AngelaMos | 2026
// pdf.go

package billing

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays out a single-page A4 bill.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (p *PDFRenderer) Render(inv *Invoice) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, inv.BusinessName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, "Laundry Bill", "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 10)
	left := [][2]string{
		{"Bill No.", inv.OrderNumber},
		{"Order Date", inv.OrderDate.Format("02 Jan 2006")},
		{"Payment", inv.PaymentStatus},
	}
	right := [][2]string{
		{"Customer", inv.CustomerName},
		{"Contact", inv.ContactNumber},
	}
	if inv.CustomerAddress != "" {
		right = append(right, [2]string{"Address", inv.CustomerAddress})
	}

	for i := 0; i < len(left) || i < len(right); i++ {
		if i < len(left) {
			doc.SetFont("Helvetica", "B", 10)
			doc.CellFormat(25, 6, left[i][0], "", 0, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 10)
			doc.CellFormat(70, 6, left[i][1], "", 0, "L", false, 0, "")
		} else {
			doc.CellFormat(95, 6, "", "", 0, "L", false, 0, "")
		}
		if i < len(right) {
			doc.SetFont("Helvetica", "B", 10)
			doc.CellFormat(25, 6, right[i][0], "", 0, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 10)
			doc.CellFormat(0, 6, right[i][1], "", 1, "L", false, 0, "")
		} else {
			doc.Ln(6)
		}
	}
	doc.Ln(6)

	headers := []struct {
		label string
		width float64
		align string
	}{
		{"Service", 45, "L"},
		{"Cloth", 40, "L"},
		{"Qty", 20, "R"},
		{"Unit Cost", 35, "R"},
		{"Amount", 35, "R"},
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(235, 235, 235)
	for _, h := range headers {
		doc.CellFormat(h.width, 8, h.label, "1", 0, h.align, true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, line := range inv.Lines {
		cells := []string{
			prettyLabel(line.ServiceType),
			prettyLabel(line.ClothType),
			fmt.Sprintf("%d", line.Quantity),
			fmt.Sprintf("%.2f", line.UnitCost),
			fmt.Sprintf("%.2f", line.TotalCost),
		}
		for i, h := range headers {
			doc.CellFormat(h.width, 7, cells[i], "1", 0, h.align, false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(140, 9, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 9, fmt.Sprintf("%.2f", inv.TotalAmount), "1", 1, "R", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 5, fmt.Sprintf(
		"Generated %s", inv.GeneratedAt.Format("02 Jan 2006 15:04 MST"),
	), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "Thank you for your business.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// prettyLabel turns stored snake_case values into printable labels.
func prettyLabel(v string) string {
	parts := strings.Split(v, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
