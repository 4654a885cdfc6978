package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail envoie l'e-mail de confirmation, avec la facture PDF
// en pièce jointe si elle a pu être générée.
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@lotus-shop.vn"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_lotus.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// Les montants sont formatés dans la devise de la commande.
func GenerateOrderConfirmationHTML(order models.Order, currency models.Currency) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
			</tr>`,
			item.Name, item.Quantity,
			pricing.FormatAmount(item.UnitPrice, currency),
			pricing.FormatAmount(item.UnitPrice*float64(item.Quantity), currency))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Sous-total:</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Livraison:</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%s</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Lotus</strong>
		</p>
	</div>
</body>
</html>`,
		order.ID.String(), itemsHTML,
		pricing.FormatAmount(order.Subtotal, currency),
		pricing.FormatAmount(order.ShippingCost, currency),
		pricing.FormatAmount(order.Total, currency))
}

// GenerateLowStockAlertHTML génère le HTML d'alerte stock bas pour l'admin
func GenerateLowStockAlertHTML(productName, sku string, stock, threshold int) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2 style="color: #c0392b;">⚠️ Alerte stock bas</h2>
	<p>Le produit <strong>%s</strong> (SKU: %s) est presque épuisé.</p>
	<p>Stock restant: <strong>%d</strong> (seuil: %d)</p>
</body>
</html>`, productName, sku, stock, threshold)
}
