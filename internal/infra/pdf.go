package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// InvoicePDF renders GST invoices to disk. Files are named after the bill
// number, so re-rendering overwrites the previous copy.
type InvoicePDF struct {
	dir string
}

func NewInvoicePDF(dir string) (*InvoicePDF, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create invoice dir: %w", err)
	}
	return &InvoicePDF{dir: dir}, nil
}

func (p *InvoicePDF) Render(b *model.Bill) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+b.BillNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Invoice No: "+b.BillNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+b.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Customer: "+b.CustomerName, "", 1, "L", false, 0, "")
	if b.CustomerPhone != nil && *b.CustomerPhone != "" {
		pdf.CellFormat(0, 6, "Phone: "+*b.CustomerPhone, "", 1, "L", false, 0, "")
	}
	if b.CustomerGSTIN != nil && *b.CustomerGSTIN != "" {
		pdf.CellFormat(0, 6, "GSTIN: "+*b.CustomerGSTIN, "", 1, "L", false, 0, "")
	}
	if b.BillingAddress != nil && *b.BillingAddress != "" {
		pdf.MultiCell(0, 6, "Address: "+*b.BillingAddress, "", "L", false)
	}
	pdf.CellFormat(0, 6, "Payment Mode: "+b.PaymentMode, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(80, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range b.Items {
		pdf.CellFormat(80, 8, it.MedicineName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, it.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 8, it.TotalPrice.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(145, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, b.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(145, 7, fmt.Sprintf("GST (%s%%)", b.GSTPercentage.StringFixed(0)), "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, b.GSTAmount.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(145, 8, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 8, b.GrandTotal.StringFixed(2), "", 1, "R", false, 0, "")

	path := filepath.Join(p.dir, fmt.Sprintf("invoice_%s.pdf", b.BillNumber))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write invoice pdf: %w", err)
	}
	return path, nil
}
