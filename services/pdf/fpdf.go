// Package pdfsvc renders achievement certificates with gofpdf.
package pdfsvc

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/cert"
)

type fpdfRenderer struct {
	appName string
}

var _ cert.Renderer = (*fpdfRenderer)(nil)

func NewFpdfRenderer(appName string) cert.Renderer {
	return &fpdfRenderer{appName: appName}
}

type theme struct {
	border    [3]int
	accent    [3]int
	titleFont string
}

var themes = map[string]theme{
	"template1": {border: [3]int{25, 55, 109}, accent: [3]int{218, 165, 32}, titleFont: "Times"},
	"template2": {border: [3]int{64, 64, 64}, accent: [3]int{140, 0, 0}, titleFont: "Helvetica"},
	"template3": {border: [3]int{0, 100, 70}, accent: [3]int{184, 134, 11}, titleFont: "Times"},
}

func (r *fpdfRenderer) Render(template string, data cert.Data) ([]byte, error) {
	th, ok := themes[template]
	if !ok {
		return nil, errors.Errorf("unknown certificate template %q", template)
	}

	pdf := fpdf.New(fpdf.OrientationLandscape, fpdf.UnitMillimeter, fpdf.PageSizeA4, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// double border
	pdf.SetDrawColor(th.border[0], th.border[1], th.border[2])
	pdf.SetLineWidth(1.5)
	pdf.Rect(8, 8, w-16, h-16, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(12, 12, w-24, h-24, "D")

	pdf.SetFont(th.titleFont, "B", 34)
	pdf.SetTextColor(th.border[0], th.border[1], th.border[2])
	pdf.SetY(35)
	pdf.CellFormat(0, 14, "Certificate of Achievement", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 8, r.appName, "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont(th.titleFont, "B", 26)
	pdf.SetTextColor(th.accent[0], th.accent[1], th.accent[2])
	pdf.CellFormat(0, 14, data.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, fmt.Sprintf("has achieved %.2f%% in", data.Percentage), "", 1, "C", false, 0, "")

	pdf.SetFont(th.titleFont, "B", 18)
	pdf.SetTextColor(th.border[0], th.border[1], th.border[2])
	pdf.CellFormat(0, 10, data.Subject, "", 1, "C", false, 0, "")

	pdf.Ln(14)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, "Awarded on "+data.Date, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing pdf")
	}
	return buf.Bytes(), nil
}
