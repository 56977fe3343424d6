package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"starbyte/internal/models"
	"starbyte/internal/pkg/mailer"
	"starbyte/internal/pkg/validation"
)

type ServiceReceipt struct {
	dialer   mailer.Dialer
	validate *validator.Validate
	from     string
	baseURL  string
	logoPath string
}

func NewServiceReceipt(container *do.Injector) (*ServiceReceipt, error) {
	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	dialer, err := do.Invoke[mailer.Dialer](container)
	if err != nil {
		return nil, err
	}

	return newServiceReceipt(dialer, vs["SMTP_USERNAME"], vs["BASE_URL"], vs["RECEIPT_LOGO_PATH"]), nil
}

func newServiceReceipt(dialer mailer.Dialer, from, baseURL, logoPath string) *ServiceReceipt {
	return &ServiceReceipt{
		dialer:   dialer,
		validate: validation.New(),
		from:     from,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logoPath: logoPath,
	}
}

// SendReceipt sends one receipt email. A bad recipient is rejected before
// any SMTP connection is made. Delivery is attempted once.
func (service *ServiceReceipt) SendReceipt(ctx context.Context, receipt *models.Receipt) *models.NotifyResult {
	if receipt == nil {
		return &models.NotifyResult{Success: false, Message: MESSAGE_EMAIL_REQUIRED}
	}

	if err := service.validate.Struct(receipt); err != nil {
		if validation.FirstFailedTag(err) == "required" {
			return &models.NotifyResult{Success: false, Message: MESSAGE_EMAIL_REQUIRED}
		}
		return &models.NotifyResult{Success: false, Message: MESSAGE_EMAIL_INVALID}
	}

	if err := ctx.Err(); err != nil {
		return service.failed(receipt, err)
	}

	msg, err := service.buildMessage(receipt)
	if err != nil {
		return service.failed(receipt, err)
	}

	if err := mailer.Send(service.dialer, msg); err != nil {
		return service.failed(receipt, err)
	}

	receiptTotal.WithLabelValues("true").Inc()
	return &models.NotifyResult{Success: true, Message: MESSAGE_RECEIPT_SENT}
}

func (service *ServiceReceipt) failed(receipt *models.Receipt, err error) *models.NotifyResult {
	zap.L().Error("send receipt failed", zap.String("order_id", receipt.OrderID), zap.Error(err))
	receiptTotal.WithLabelValues("false").Inc()
	return &models.NotifyResult{Success: false, Message: MESSAGE_RECEIPT_FAILED}
}

func (service *ServiceReceipt) buildMessage(receipt *models.Receipt) (*gomail.Message, error) {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", service.from, RECEIPT_FROM_NAME)
	msg.SetHeader("To", receipt.To)
	msg.SetHeader("Subject", RECEIPT_SUBJECT)

	logoSrc, logo := service.logo()
	if logo != nil {
		msg.Embed(RECEIPT_LOGO_CID, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(logo)
			return err
		}))
	}

	html, err := service.renderHTML(receipt, logoSrc)
	if err != nil {
		return nil, err
	}
	msg.SetBody("text/html", html)
	return msg, nil
}

// logo returns the image source for the header logo. The file is embedded
// inline when readable, otherwise the hosted copy is linked.
func (service *ServiceReceipt) logo() (string, []byte) {
	if service.logoPath != "" {
		if b, err := os.ReadFile(service.logoPath); err == nil {
			return "cid:" + RECEIPT_LOGO_CID, b
		}
	}
	return service.baseURL + RECEIPT_LOGO_PATH, nil
}

func (service *ServiceReceipt) renderHTML(receipt *models.Receipt, logoSrc string) (string, error) {
	date := receipt.Date
	if date.IsZero() {
		date = time.Now()
	}

	view := receiptView{
		LogoSrc:  template.URL(logoSrc),
		BaseURL:  service.baseURL,
		Brand:    template.CSS(BRAND_COLOR),
		Name:     receipt.Name,
		OrderID:  receipt.OrderID,
		To:       receipt.To,
		Date:     date.UTC().Format("2006-01-02"),
		Total:    formatStardust(receipt.Total),
		Year:     time.Now().Year(),
		Products: make([]receiptProductView, 0, len(receipt.Products)),
	}

	for _, p := range receipt.Products {
		row := receiptProductView{
			Title:        p.Title,
			Description:  deref(p.Description),
			Instructions: deref(p.DeliveryInstructions),
			ImageURL:     deref(p.ImageURL),
			Price:        formatStardust(p.Price),
		}
		if p.RewardDetail != nil {
			row.Code = p.RewardDetail.Code
			row.Link = p.RewardDetail.Link
		}
		view.Products = append(view.Products, row)
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

func formatStardust(n int64) string {
	return strconv.FormatInt(n, 10) + " Stardust"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
