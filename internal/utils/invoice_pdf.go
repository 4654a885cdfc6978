package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GeneratePaymentQR génère un QR de paiement (référence virement) en base64
// prêt à mettre dans <img src="...">
func GeneratePaymentQR(bankCode, accountNumber, accountName, ref string, amount float64) (string, error) {
	payload := fmt.Sprintf("%s|%s|%s|%.0f|%s", bankCode, accountNumber, accountName, amount, ref)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF charge la page facture du front et l'imprime en PDF.
// frontendURL doit ressembler à: http://localhost:3000/invoice
func RenderInvoicePDF(frontendURL, invoiceID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", invoiceID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GetFrontendInvoiceBaseURL récupère l'URL du front depuis l'env
func GetFrontendInvoiceBaseURL() string {
	u := os.Getenv("FRONTEND_INVOICE_URL")
	if u == "" {
		return "http://localhost:3000/invoice"
	}
	return u
}

// GenerateInvoicePDF génère la facture PDF d'une commande avec son QR de paiement
func GenerateInvoicePDF(orderID string, total float64) ([]byte, error) {
	bankCode := os.Getenv("BANK_CODE")
	if bankCode == "" {
		bankCode = "VCB"
	}
	accountNumber := os.Getenv("BANK_ACCOUNT_NUMBER")
	if accountNumber == "" {
		accountNumber = "0123456789"
	}
	accountName := os.Getenv("BANK_ACCOUNT_NAME")
	if accountName == "" {
		accountName = "LOTUS SHOP"
	}

	qr, err := GeneratePaymentQR(bankCode, accountNumber, accountName, orderID, total)
	if err != nil {
		return nil, err
	}

	return RenderInvoicePDF(GetFrontendInvoiceBaseURL(), orderID, qr)
}
