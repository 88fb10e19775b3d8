// Package upi builds UPI deep-link payment requests and renders them as
// scannable QR images.
package upi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Payee identifies who gets paid.
type Payee struct {
	VPA  string // virtual payment address, e.g. shop@upi
	Name string // display name shown in the paying app
}

// PaymentURI encodes a payment request in the upi://pay scheme. The
// transaction note carries the order id so the payment can be matched to
// the order by a human reading the bank statement. Spaces are encoded as
// %20 rather than +, which paying apps display verbatim in the note.
func PaymentURI(p Payee, amount int, orderID string) string {
	q := url.Values{}
	q.Set("pa", p.VPA)
	q.Set("pn", p.Name)
	q.Set("am", strconv.Itoa(amount))
	q.Set("cu", "INR")
	q.Set("tn", "Order "+orderID)
	// Values.Encode escapes a literal "+" to %2B, so every remaining "+"
	// is a space.
	return "upi://pay?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// QRPNG renders a URI as a PNG image.
func QRPNG(uri string) ([]byte, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, 512)
	if err != nil {
		return nil, fmt.Errorf("upi: encode qr: %w", err)
	}
	return png, nil
}
