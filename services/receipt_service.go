package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// GenerateEnrollmentReceipt renders a PDF receipt for a confirmed order,
// uploads it and stores the URL on the order. Runs in a goroutine after
// enrollment; failures are logged and never block the confirmation.
func GenerateEnrollmentReceipt(orderRecordID string) {
	if configs.C.CloudinaryURL == "" {
		return
	}

	var order models.PaymentOrder
	if err := database.DB.Preload("Course").Preload("Student").
		First(&order, "id = ?", orderRecordID).Error; err != nil {
		log.Printf("🔥 Receipt generation: order %s not found: %v", orderRecordID, err)
		return
	}

	htmlData, err := renderReceiptHTML(order)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for order %s: %v", order.OrderID, err)
		return
	}

	pdfBytes, err := renderPDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for order %s: %v", order.OrderID, err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, order.OrderID)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for order %s: %v", order.OrderID, err)
		return
	}

	if err := database.DB.Model(&models.PaymentOrder{}).
		Where("id = ?", order.ID).
		Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to store receipt URL for order %s: %v", order.OrderID, err)
		return
	}
	log.Printf("✅ Generated receipt for order %s", order.OrderID)
}

func renderReceiptHTML(order models.PaymentOrder) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName string
		CourseName  string
		OrderID     string
		Amount      string
		Date        string
	}{
		StudentName: order.Student.FirstName + " " + order.Student.LastName,
		CourseName:  order.Course.Name,
		OrderID:     order.OrderID,
		Amount:      fmt.Sprintf("%.2f %s", float64(order.Amount)/100, order.Currency),
		Date:        time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, orderID string) (string, error) {
	cld, err := cloudinaryClient()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipt_%s", orderID),
		Folder:       "tutor_marketplace_receipts",
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
