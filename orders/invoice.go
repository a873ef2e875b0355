package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"velora/models"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/mongo"
)

func invoiceSecret() []byte {
	if s := os.Getenv("INVOICE_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("velora-invoice-secret")
}

// InvoiceQRPayload returns a verifiable payload:
// orderNumber|userID|timestamp|signature
func InvoiceQRPayload(order models.Order) string {
	data := fmt.Sprintf("%s|%s|%d", order.OrderNumber, order.UserID, time.Now().Unix())

	h := hmac.New(sha256.New, invoiceSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintInvoice renders a PDF invoice for an order the caller owns, with a
// signed QR payload for delivery verification.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := findOrder(ctx, ps.ByName("orderNumber"))
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}
	if order.UserID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	qrPNG, err := qrcode.Encode(InvoiceQRPayload(order), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Velora - Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s", order.PaymentMethod))
	pdf.Ln(6)
	addr := order.ShippingAddress
	pdf.Cell(0, 8, fmt.Sprintf("Ship to: %s, %s, %s %s", addr.Street, addr.City, addr.State, addr.PostalCode))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(90, 8, "Item")
	pdf.Cell(30, 8, "Qty")
	pdf.Cell(40, 8, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		label := item.Name
		if item.Size != "" {
			label += " (" + item.Size + ")"
		}
		pdf.Cell(90, 7, label)
		pdf.Cell(30, 7, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(40, 7, fmt.Sprintf("%.2f", item.UnitPrice*float64(item.Quantity)))
		pdf.Ln(7)
	}

	pdf.Ln(5)
	totals := order.Totals
	for _, row := range [][2]string{
		{"Subtotal", fmt.Sprintf("%.2f", totals.Subtotal)},
		{"Shipping", fmt.Sprintf("%.2f", totals.ShippingCost)},
		{"Tax", fmt.Sprintf("%.2f", totals.Tax)},
		{"Discount", fmt.Sprintf("-%.2f", totals.Discount)},
		{"Total", fmt.Sprintf("%.2f", totals.Total)},
	} {
		pdf.Cell(120, 7, row[0])
		pdf.Cell(40, 7, row[1])
		pdf.Ln(7)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
