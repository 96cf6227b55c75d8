package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/pkg/log"
	"github.com/arsalan507/simplequran/internal/pkg/redact"
)

const (
	// DownloadSubject — тема письма со ссылкой на скачивание.
	DownloadSubject = "Your Simple Quran Order Confirmation - Download Your E-Books"

	enquirySubjectPrefix = "🔔 New Hardcopy Enquiry from "
)

//go:embed templates/*.html templates/*.txt
var templatesFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/*.txt"))
)

// ist — время заявок показывается по Индии.
var ist = time.FixedZone("IST", 5*60*60+30*60)

// Dispatcher собирает письма и передаёт их Sender.
type Dispatcher struct {
	sender    Sender
	support   string
	siteURL   string
	unitPrice decimal.Decimal
	now       func() time.Time
}

// NewDispatcher создаёт Dispatcher поверх произвольного Sender.
func NewDispatcher(s Sender, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		sender:    s,
		support:   cfg.Email.SupportEmail,
		siteURL:   strings.TrimRight(cfg.Site.BaseURL, "/"),
		unitPrice: cfg.Product.HardcopyUnitAmount(),
		now:       time.Now,
	}
}

type downloadView struct {
	Name        string
	PaymentID   string
	DownloadURL string
	Support     string
	SiteURL     string
	Year        int
}

// SendDownloadEmail отправляет покупателю ссылку на портал скачивания.
func (d *Dispatcher) SendDownloadEmail(ctx context.Context, to, name, paymentID, downloadURL string) error {
	const op = "mailer.Dispatcher.SendDownloadEmail"

	view := downloadView{
		Name:        name,
		PaymentID:   paymentID,
		DownloadURL: downloadURL,
		Support:     d.support,
		SiteURL:     d.siteURL,
		Year:        d.now().In(ist).Year(),
	}

	msg, err := render("download", view)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg.To = to
	msg.Subject = DownloadSubject

	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("download_email_sent",
		slog.String("to", redact.Email(to)),
		slog.String("payment_id", paymentID),
	)

	return nil
}

type enquiryView struct {
	models.HardcopyEnquiry
	Copies     string
	Total      string
	UnitPrice  string
	ReceivedAt string
}

// SendEnquiryEmail пересылает заявку в поддержку; ответ уходит заявителю.
func (d *Dispatcher) SendEnquiryEmail(ctx context.Context, e models.HardcopyEnquiry) error {
	const op = "mailer.Dispatcher.SendEnquiryEmail"

	copies := "copies"
	if e.Quantity == 1 {
		copies = "copy"
	}

	view := enquiryView{
		HardcopyEnquiry: e,
		Copies:          copies,
		Total:           FormatINR(EnquiryTotal(d.unitPrice, int(e.Quantity))),
		UnitPrice:       FormatINR(d.unitPrice),
		ReceivedAt:      d.now().In(ist).Format("Monday, 2 January 2006 at 15:04:05 MST"),
	}

	msg, err := render("enquiry", view)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg.To = d.support
	msg.ReplyTo = e.Email
	msg.Subject = enquirySubjectPrefix + e.Name

	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("enquiry_email_sent",
		slog.String("from", redact.Email(e.Email)),
		slog.Int("quantity", int(e.Quantity)),
	)

	return nil
}

// EnquiryTotal — сумма заявки: цена экземпляра × количество.
func EnquiryTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// FormatINR форматирует сумму в рупиях с индийской группировкой разрядов:
// 3500 → ₹3,500; 350000 → ₹3,50,000. Копейки выводятся только если они есть.
func FormatINR(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	out := sign + "₹" + groupIndian(whole)
	if frac != "00" {
		out += "." + frac
	}

	return out
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}

	return strings.Join(parts, ",") + "," + tail
}

func render(name string, view any) (Message, error) {
	var html, text bytes.Buffer

	if err := htmlTemplates.ExecuteTemplate(&html, name+".html", view); err != nil {
		return Message{}, fmt.Errorf("render %s.html: %w", name, err)
	}

	if err := textTemplates.ExecuteTemplate(&text, name+".txt", view); err != nil {
		return Message{}, fmt.Errorf("render %s.txt: %w", name, err)
	}

	return Message{HTML: html.String(), Text: strings.TrimSpace(text.String())}, nil
}
