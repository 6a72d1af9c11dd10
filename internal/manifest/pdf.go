package manifest

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/RaikyD/digital-link/internal/application"
	"github.com/RaikyD/digital-link/internal/domain"
)

const qrPrefix = "DL/"

// ShipmentQR encodes a shipment reference as a PNG for the driver to scan.
func ShipmentQR(shipmentID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(qrPrefix+shipmentID, qrcode.Medium, size)
}

// RenderPDF lays out a manifest on A4 pages, one block per shipment.
func RenderPDF(entries []application.ManifestEntry, generatedAt time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptySelection
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Shipment manifest", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s, %d shipment(s)", generatedAt.Format(domain.ArrivalLayout), len(entries)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	const qrSize = 22.0
	for i, e := range entries {
		// Keep the header, QR and at least one row together.
		if pdf.GetY()+qrSize+12 > 282 {
			pdf.AddPage()
		}
		top := pdf.GetY()

		png, err := ShipmentQR(e.ShipmentID, 256)
		if err != nil {
			return nil, err
		}
		imgName := fmt.Sprintf("qr_%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
		pdf.ImageOptions(imgName, 210-15-qrSize, top, qrSize, qrSize, false, opts, 0, "")

		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(120, 7, tr("Shipment #"+e.ShipmentID), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(120, 6, tr("Date: "+e.Date), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(80, 6, "Item", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, "Quantity", "1", 0, "R", true, 0, "")
		pdf.CellFormat(25, 6, "Unit", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, "Delivered", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, it := range e.Items {
			delivered := "-"
			if it.Delivered != nil {
				delivered = strconv.Itoa(*it.Delivered)
			}
			pdf.CellFormat(80, 6, tr(it.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, strconv.Itoa(it.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, tr(it.Unit), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, delivered, "1", 1, "R", false, 0, "")
		}

		if y := top + qrSize + 2; pdf.GetY() < y {
			pdf.SetY(y)
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
