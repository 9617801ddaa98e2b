package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/smk-kristen-pedan/order-tracker/models"
)

const (
	pdfMargin     = 20.0
	pdfLineH      = 7.0
	pdfLabelW     = 45.0
	accentR       = 33
	accentG       = 150
	accentB       = 243
	mutedGray     = 102
	tableHeadGray = 245
)

// RenderPDF renders the order detail document as an A4 PDF
func RenderPDF(order models.Order, generatedAt time.Time) ([]byte, error) {
	d := newDetail(order, generatedAt)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Detail Pesanan "+d.CustomerName, true)
	pdf.SetCreationDate(generatedAt)
	pdf.AddPage()

	// Core fonts are cp1252; translate so names with accents survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.CellFormat(contentW, 12, "DETAIL PESANAN", "", 1, "C", false, 0, "")
	pdf.SetDrawColor(accentR, accentG, accentB)
	pdf.SetLineWidth(0.6)
	pdf.Line(pdfMargin, pdf.GetY()+2, pageW-pdfMargin, pdf.GetY()+2)
	pdf.Ln(8)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(accentR, accentG, accentB)
		pdf.CellFormat(contentW, 9, title, "B", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(mutedGray, mutedGray, mutedGray)
		pdf.CellFormat(pdfLabelW, pdfLineH, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(51, 51, 51)
		pdf.MultiCell(contentW-pdfLabelW, pdfLineH, tr(value), "", "L", false)
	}

	pdf.SetDrawColor(221, 221, 221)
	pdf.SetLineWidth(0.2)

	section("Informasi Pelanggan")
	row("Nama Pelanggan:", d.CustomerName)
	if d.PhoneNumber != "" {
		row("Nomor Telepon:", d.PhoneNumber)
	}
	row("Detail Pesanan:", d.OrderDetails)
	pdf.Ln(4)

	section("Detail Produksi")
	row("Jumlah:", fmt.Sprintf("%d unit", d.Quantity))
	row("Harga per Unit:", d.UnitPrice)
	row("Tanggal Pesan:", d.OrderDate)
	row("Tanggal Selesai:", d.CompletedDate)
	pdf.Ln(4)

	section("Bahan-bahan")
	nameW, qtyW := contentW*0.5, contentW*0.25
	unitW := contentW - nameW - qtyW
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFillColor(tableHeadGray, tableHeadGray, tableHeadGray)
	pdf.CellFormat(nameW, pdfLineH+1, "Nama Bahan", "1", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, pdfLineH+1, "Jumlah", "1", 0, "R", true, 0, "")
	pdf.CellFormat(unitW, pdfLineH+1, "Satuan", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, m := range d.Materials {
		pdf.CellFormat(nameW, pdfLineH+1, tr(m.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, pdfLineH+1, m.Quantity, "1", 0, "R", false, 0, "")
		pdf.CellFormat(unitW, pdfLineH+1, tr(m.Unit), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.CellFormat(contentW, 10, "Total: "+d.Total, "T", 1, "R", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(mutedGray, mutedGray, mutedGray)
	pdf.CellFormat(contentW, 6, "Dokumen ini digenerate pada "+d.GeneratedAt, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf for order %s: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}
