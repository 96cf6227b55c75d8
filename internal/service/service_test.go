package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/gateway/instamojo"
	"github.com/arsalan507/simplequran/internal/mailer"
	"github.com/arsalan507/simplequran/internal/metrics"
	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/storage"
	"github.com/arsalan507/simplequran/internal/storage/memory"
	"github.com/arsalan507/simplequran/internal/token"
	"github.com/arsalan507/simplequran/internal/webhook"
	"github.com/arsalan507/simplequran/mocks"
)

const testSalt = "unit-salt"

func testCfg() *config.Config {
	return &config.Config{
		Token:   config.TokenConfig{Secret: "unit-secret", TTL: 8760 * time.Hour, Issuer: "simplequran"},
		Product: config.ProductConfig{Name: "Simple Quran - Complete Bundle", Price: "249", HardcopyUnitPrice: "3500"},
		Site:    config.SiteConfig{BaseURL: "https://simplequran.in"},
	}
}

type deps struct {
	gateway  *mocks.MockPaymentGateway
	notifier *mocks.MockNotifier
	orders   *mocks.MockOrderStorage
	links    *mocks.MockEbookLinks
	tokens   *token.Codec
}

func newSvcWith(t *testing.T, cfg *config.Config, verify bool) (*Service, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	codec, err := token.New(cfg.Token)
	require.NoError(t, err)

	d := deps{
		gateway:  mocks.NewMockPaymentGateway(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		orders:   mocks.NewMockOrderStorage(ctrl),
		links:    mocks.NewMockEbookLinks(ctrl),
		tokens:   codec,
	}

	svc := New(cfg, Deps{
		Gateway:  d.gateway,
		Notifier: d.notifier,
		Orders:   d.orders,
		Links:    d.links,
		Tokens:   codec,
		Verifier: webhook.NewVerifier(testSalt, verify),
		Metrics:  metrics.New(prometheus.NewRegistry()),
	})

	return svc, d
}

func newSvc(t *testing.T) (*Service, deps) {
	t.Helper()
	return newSvcWith(t, testCfg(), true)
}

func TestDownloadURL(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"https://simplequran.in/api/download?token=a.b.c&payment_id=MOJO%2F1",
		downloadURL("https://simplequran.in/", "a.b.c", "MOJO/1"))
	require.Equal(t,
		"https://simplequran.in/api/download?token=a.b.c",
		downloadURL("https://simplequran.in", "a.b.c", ""))
}

func TestRedirectBase(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://shop.example.com", RedirectBase("", "shop.example.com"))
	require.Equal(t, "http://localhost:8080", RedirectBase("http", "localhost:8080"))
	require.Equal(t, "https://a.example.com", RedirectBase("https, http", "a.example.com, b.example.com"))
}

// --- CreatePayment ---

func TestCreatePayment_OK(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	want := &models.PaymentLink{PaymentID: "REQ1", PaymentURL: "https://www.instamojo.com/@simplequran/REQ1"}
	d.gateway.EXPECT().
		CreatePaymentRequest(gomock.Any(), models.PaymentRequest{
			Purpose:     "Simple Quran - Complete Bundle",
			Amount:      "249",
			BuyerName:   "Customer",
			Email:       "a@b.com",
			Phone:       "+919876543210",
			RedirectURL: "https://simplequran.in/payment-success",
		}).
		Return(want, nil)

	got, err := svc.CreatePayment(context.Background(), models.CheckoutRequest{
		Email: " a@b.com ",
		Phone: "+91 98765-43210",
	}, "https://simplequran.in")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCreatePayment_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  models.CheckoutRequest
		msg  string
	}{
		{"no email", models.CheckoutRequest{Phone: "9876543210"}, "Email is required"},
		{"no phone", models.CheckoutRequest{Email: "a@b.com"}, "Phone number is required"},
		{"short phone", models.CheckoutRequest{Email: "a@b.com", Phone: "12345"}, "Invalid phone number format. Please provide a valid 10-digit Indian mobile number."},
		{"letters", models.CheckoutRequest{Email: "a@b.com", Phone: "98765abcde"}, "Invalid phone number format. Please provide a valid 10-digit Indian mobile number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// без EXPECT: процессор вызываться не должен
			svc, _ := newSvc(t)

			_, err := svc.CreatePayment(context.Background(), tt.req, "https://simplequran.in")
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.msg, verr.Message)
		})
	}
}

func TestCreatePayment_GatewayError(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	upstream := &instamojo.UpstreamError{Status: 400, Message: "Invalid phone"}
	d.gateway.EXPECT().CreatePaymentRequest(gomock.Any(), gomock.Any()).Return(nil, upstream)

	_, err := svc.CreatePayment(context.Background(), models.CheckoutRequest{
		Name: "Ali", Email: "a@b.com", Phone: "9876543210",
	}, "https://simplequran.in")

	var uerr *instamojo.UpstreamError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, 400, uerr.HTTPStatus())
}

func TestCreatePayment_NameAndPriceFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.Product.Price = "199.50"
	svc, d := newSvcWith(t, cfg, true)

	d.gateway.EXPECT().CreatePaymentRequest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.PaymentRequest) (*models.PaymentLink, error) {
			require.Equal(t, "199.5", req.Amount)
			require.Equal(t, "Ali", req.BuyerName)
			return &models.PaymentLink{PaymentID: "R", PaymentURL: "https://x"}, nil
		})

	_, err := svc.CreatePayment(context.Background(), models.CheckoutRequest{
		Name: "Ali", Email: "a@b.com", Phone: "919876543210",
	}, "https://simplequran.in")
	require.NoError(t, err)
}

// --- HandleNotification ---

func credited() map[string]string {
	return map[string]string{
		"payment_id":         "MOJO5a06005J21512345",
		"payment_request_id": "d66cb29dd059482e8072999f995c4eef",
		"status":             "Credit",
		"buyer":              "buyer@example.com",
		"buyer_name":         "Ayesha",
		"buyer_phone":        "+919876543210",
		"amount":             "249.00",
		"currency":           "INR",
		"purpose":            "Simple Quran - Complete Bundle",
	}
}

func sign(fields map[string]string) map[string]string {
	fields[webhook.MACField] = webhook.Sign(testSalt, fields)
	return fields
}

func TestHandleNotification_Credited_NewOrder(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	fields := sign(credited())

	var saved *models.Order
	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *models.Order) error {
			saved = o
			return nil
		})

	d.orders.EXPECT().ClaimEmail(gomock.Any(), "MOJO5a06005J21512345", gomock.Any(), emailClaimLease).Return(true, nil)
	var sentURL string
	d.notifier.EXPECT().
		SendDownloadEmail(gomock.Any(), "buyer@example.com", "Ayesha", "MOJO5a06005J21512345", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _, link string) error {
			sentURL = link
			return nil
		})
	d.orders.EXPECT().MarkEmailSent(gomock.Any(), "MOJO5a06005J21512345", gomock.Any()).Return(nil)

	res, err := svc.HandleNotification(context.Background(), fields)
	require.NoError(t, err)
	require.True(t, res.Processed)
	require.False(t, res.Duplicate)
	require.True(t, res.EmailSent)
	require.Equal(t, res.DownloadURL, sentURL)

	require.Equal(t, "d66cb29dd059482e8072999f995c4eef", saved.PaymentRequestID)
	require.Equal(t, "buyer@example.com", saved.Email)
	require.Equal(t, "Credit", saved.Status)

	u, err := url.Parse(res.DownloadURL)
	require.NoError(t, err)
	require.Equal(t, "simplequran.in", u.Host)
	require.Equal(t, "/api/download", u.Path)
	require.Equal(t, "MOJO5a06005J21512345", u.Query().Get("payment_id"))
	require.Equal(t, res.Token, u.Query().Get("token"))

	data, err := d.tokens.Validate(res.Token)
	require.NoError(t, err)
	require.Equal(t, "d66cb29dd059482e8072999f995c4eef", data.OrderID)
	require.Equal(t, "buyer@example.com", data.Email)
	require.Equal(t, "MOJO5a06005J21512345", data.PaymentID)
}

func TestHandleNotification_InvalidSignature(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	fields := sign(credited())
	fields["amount"] = "1.00"

	_, err := svc.HandleNotification(context.Background(), fields)
	require.ErrorIs(t, err, webhook.ErrInvalidSignature)
}

func TestHandleNotification_MissingMAC(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)

	_, err := svc.HandleNotification(context.Background(), credited())
	require.ErrorIs(t, err, webhook.ErrInvalidSignature)
}

func TestHandleNotification_VerificationSkipped(t *testing.T) {
	t.Parallel()

	svc, d := newSvcWith(t, testCfg(), false)

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().MarkEmailSent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.HandleNotification(context.Background(), credited())
	require.NoError(t, err)
	require.True(t, res.Processed)
}

func TestHandleNotification_NotCredited_NoSideEffects(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	fields := credited()
	fields["status"] = "Failed"

	res, err := svc.HandleNotification(context.Background(), sign(fields))
	require.NoError(t, err)
	require.False(t, res.Processed)
	require.Empty(t, res.Token)
}

func TestHandleNotification_MissingPaymentID(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	fields := credited()
	delete(fields, "payment_id")

	_, err := svc.HandleNotification(context.Background(), sign(fields))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"payment_id"}, verr.Fields)
}

func TestHandleNotification_EmailFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(mailer.ErrNotConfigured)
	d.orders.EXPECT().ReleaseEmail(gomock.Any(), "MOJO5a06005J21512345").Return(nil)
	// MarkEmailSent вызываться не должен

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.True(t, res.Processed)
	require.False(t, res.EmailSent)
	require.NotEmpty(t, res.Token)
}

func TestHandleNotification_MarkEmailSentFailureIsLogged(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().MarkEmailSent(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.True(t, res.EmailSent)
}

func TestHandleNotification_Duplicate_EmailAlreadySent(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	sentAt := time.Now().Add(-time.Minute).UTC()

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
	d.orders.EXPECT().OrderByPaymentID(gomock.Any(), "MOJO5a06005J21512345").
		Return(&models.Order{PaymentID: "MOJO5a06005J21512345", EmailSentAt: &sentAt}, nil)

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.True(t, res.Processed)
	require.True(t, res.Duplicate)
	require.False(t, res.EmailSent)

	// повторная доставка всё равно выпускает рабочий токен
	_, err = d.tokens.Validate(res.Token)
	require.NoError(t, err)
}

func TestHandleNotification_Duplicate_EmailPending(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
	d.orders.EXPECT().OrderByPaymentID(gomock.Any(), gomock.Any()).
		Return(&models.Order{PaymentID: "MOJO5a06005J21512345"}, nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().MarkEmailSent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.True(t, res.Duplicate)
	require.True(t, res.EmailSent)
}

func TestHandleNotification_EmailClaimedElsewhere(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
	d.orders.EXPECT().OrderByPaymentID(gomock.Any(), gomock.Any()).
		Return(&models.Order{PaymentID: "MOJO5a06005J21512345"}, nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	// письмо отправляет другой обработчик

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.True(t, res.Processed)
	require.True(t, res.Duplicate)
	require.False(t, res.EmailSent)
}

func TestHandleNotification_EmailClaimFailure(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	boom := errors.New("db down")

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, boom)

	_, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.ErrorIs(t, err, boom)
}

func TestHandleNotification_ReleaseFailureIsLogged(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp timeout"))
	d.orders.EXPECT().ReleaseEmail(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.False(t, res.EmailSent)
}

// countingNotifier считает письма со ссылкой; fail — сколько первых отправок провалить.
type countingNotifier struct {
	delay time.Duration
	fail  int32
	calls atomic.Int32
}

func (n *countingNotifier) SendDownloadEmail(ctx context.Context, _, _, _, _ string) error {
	call := n.calls.Add(1)
	select {
	case <-time.After(n.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if call <= n.fail {
		return errors.New("smtp unavailable")
	}

	return nil
}

func (n *countingNotifier) SendEnquiryEmail(context.Context, models.HardcopyEnquiry) error {
	return nil
}

func newLedgerSvc(t *testing.T, n Notifier) (*Service, *memory.Storage) {
	t.Helper()

	cfg := testCfg()
	codec, err := token.New(cfg.Token)
	require.NoError(t, err)

	orders := memory.New()
	svc := New(cfg, Deps{
		Notifier: n,
		Orders:   orders,
		Tokens:   codec,
		Verifier: webhook.NewVerifier(testSalt, true),
	})

	return svc, orders
}

func TestHandleNotification_ConcurrentRedeliveries_SendOneEmail(t *testing.T) {
	t.Parallel()

	notifier := &countingNotifier{delay: 200 * time.Millisecond}
	svc, orders := newLedgerSvc(t, notifier)

	const n = 5
	var (
		wg   sync.WaitGroup
		errs = make(chan error, n)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.HandleNotification(context.Background(), sign(credited()))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, int32(1), notifier.calls.Load())

	order, err := orders.OrderByPaymentID(context.Background(), "MOJO5a06005J21512345")
	require.NoError(t, err)
	require.True(t, order.EmailSent())
}

func TestHandleNotification_FailedEmailIsRetriedOnRedelivery(t *testing.T) {
	t.Parallel()

	notifier := &countingNotifier{fail: 1}
	svc, orders := newLedgerSvc(t, notifier)

	res, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.False(t, res.EmailSent)

	res, err = svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.True(t, res.Duplicate)
	require.True(t, res.EmailSent)

	res, err = svc.HandleNotification(context.Background(), sign(credited()))
	require.NoError(t, err)
	require.False(t, res.EmailSent)

	require.Equal(t, int32(2), notifier.calls.Load())

	order, err := orders.OrderByPaymentID(context.Background(), "MOJO5a06005J21512345")
	require.NoError(t, err)
	require.True(t, order.EmailSent())
}

func TestHandleNotification_LedgerFailure(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	boom := errors.New("connection refused")

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(boom)

	_, err := svc.HandleNotification(context.Background(), sign(credited()))
	require.ErrorIs(t, err, boom)
}

func TestHandleNotification_DefaultBuyerName(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	fields := credited()
	delete(fields, "buyer_name")

	d.orders.EXPECT().SaveOrder(gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().ClaimEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), "Customer", gomock.Any(), gomock.Any()).Return(nil)
	d.orders.EXPECT().MarkEmailSent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.HandleNotification(context.Background(), sign(fields))
	require.NoError(t, err)
}

// --- ResolveDownload ---

func bundle() []models.DownloadLink {
	return storage.Bundle("https://cdn.example.com/v1.pdf", "https://cdn.example.com/v2.pdf")
}

func issue(t *testing.T, codec *token.Codec, pid string) string {
	t.Helper()
	tok, err := codec.Issue(context.Background(), models.OrderData{OrderID: "REQ1", Email: "a@b.com", PaymentID: pid})
	require.NoError(t, err)
	return tok
}

func TestResolveDownload_OK(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	d.links.EXPECT().Links(gomock.Any()).Return(bundle(), nil)

	portal, err := svc.ResolveDownload(context.Background(), issue(t, d.tokens, "P1"))
	require.NoError(t, err)
	require.Equal(t, "REQ1", portal.Order.OrderID)
	require.Equal(t, "P1", portal.Order.PaymentID)
	require.Equal(t, "a@b.com", portal.Order.Email)
	require.Len(t, portal.Links, 2)
}

func TestResolveDownload_MissingToken(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)

	_, err := svc.ResolveDownload(context.Background(), "  ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestResolveDownload_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	_, err := svc.ResolveDownload(context.Background(), "test_token_1700000000000")
	require.ErrorIs(t, err, token.ErrInvalidToken)

	tok := issue(t, d.tokens, "P1")
	_, err = svc.ResolveDownload(context.Background(), tok+"x")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestResolveDownload_RequireOrder(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.Downloads.RequireOrder = true
	svc, d := newSvcWith(t, cfg, true)

	d.orders.EXPECT().OrderByPaymentID(gomock.Any(), "P1").Return(&models.Order{PaymentID: "P1"}, nil)
	d.links.EXPECT().Links(gomock.Any()).Return(bundle(), nil)

	_, err := svc.ResolveDownload(context.Background(), issue(t, d.tokens, "P1"))
	require.NoError(t, err)

	d.orders.EXPECT().OrderByPaymentID(gomock.Any(), "P2").Return(nil, storage.ErrNotFound)
	_, err = svc.ResolveDownload(context.Background(), issue(t, d.tokens, "P2"))
	require.ErrorIs(t, err, token.ErrInvalidToken)

	boom := errors.New("db down")
	d.orders.EXPECT().OrderByPaymentID(gomock.Any(), "P3").Return(nil, boom)
	_, err = svc.ResolveDownload(context.Background(), issue(t, d.tokens, "P3"))
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, token.ErrInvalidToken)
}

func TestResolveDownload_LinksError(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	d.links.EXPECT().Links(gomock.Any()).Return(nil, storage.ErrNoLinks)

	_, err := svc.ResolveDownload(context.Background(), issue(t, d.tokens, "P1"))
	require.ErrorIs(t, err, storage.ErrNoLinks)
}

// --- SubmitEnquiry ---

func validEnquiry() models.HardcopyEnquiry {
	return models.HardcopyEnquiry{
		Name:     "Imran",
		Email:    "imran@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
		Quantity: 2,
	}
}

func TestSubmitEnquiry_OK(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)

	e := validEnquiry()
	e.Name = "  Imran "
	d.notifier.EXPECT().SendEnquiryEmail(gomock.Any(), validEnquiry()).Return(nil)

	require.NoError(t, svc.SubmitEnquiry(context.Background(), e))
}

func TestSubmitEnquiry_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.HardcopyEnquiry)
		msg    string
	}{
		{"missing name", func(e *models.HardcopyEnquiry) { e.Name = "" }, "Missing required fields"},
		{"missing quantity", func(e *models.HardcopyEnquiry) { e.Quantity = 0 }, "Missing required fields"},
		{"blank city", func(e *models.HardcopyEnquiry) { e.City = "   " }, "Missing required fields"},
		{"bad email", func(e *models.HardcopyEnquiry) { e.Email = "imran@example" }, "Invalid email format"},
		{"bad phone", func(e *models.HardcopyEnquiry) { e.Phone = "+919876543210" }, "Phone number must be 10 digits"},
		{"bad pincode", func(e *models.HardcopyEnquiry) { e.Pincode = "5600" }, "Pincode must be 6 digits"},
		{"negative quantity", func(e *models.HardcopyEnquiry) { e.Quantity = -1 }, "Quantity must be between 1 and 100"},
		{"too many", func(e *models.HardcopyEnquiry) { e.Quantity = 101 }, "Quantity must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newSvc(t)
			e := validEnquiry()
			tt.mutate(&e)

			err := svc.SubmitEnquiry(context.Background(), e)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.msg, verr.Message)
			if tt.msg == "Missing required fields" {
				require.Equal(t, []string{"name", "email", "phone", "address", "city", "state", "pincode", "quantity"}, verr.Fields)
			}
		})
	}
}

func TestSubmitEnquiry_SendFailure(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	d.notifier.EXPECT().SendEnquiryEmail(gomock.Any(), gomock.Any()).Return(mailer.ErrNotConfigured)

	err := svc.SubmitEnquiry(context.Background(), validEnquiry())
	require.ErrorIs(t, err, ErrEnquiryNotSent)
	require.NotErrorIs(t, err, mailer.ErrNotConfigured)
}

// --- SendTestEmail ---

func TestSendTestEmail_OK(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(),
		"tester@example.com",
		"Valued Customer",
		"TEST_1700000000123",
		"https://simplequran.in/api/download?token=test_token_1700000000123",
	).Return(nil)

	require.NoError(t, svc.SendTestEmail(context.Background(), models.TestEmailRequest{Email: "tester@example.com"}))
}

func TestSendTestEmail_EmailRequired(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)

	err := svc.SendTestEmail(context.Background(), models.TestEmailRequest{Name: "X"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Email is required", verr.Message)
}

func TestSendTestEmail_Failure(t *testing.T) {
	t.Parallel()

	svc, d := newSvc(t)
	d.notifier.EXPECT().SendDownloadEmail(gomock.Any(), gomock.Any(), "Sam", gomock.Any(), gomock.Any()).
		Return(mailer.ErrNotConfigured)

	err := svc.SendTestEmail(context.Background(), models.TestEmailRequest{Email: "a@b.com", Name: "Sam"})
	require.ErrorIs(t, err, ErrTestEmailNotSent)
	require.ErrorIs(t, err, mailer.ErrNotConfigured)
}
