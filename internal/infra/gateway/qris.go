package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// failure classes of a single request
var (
	errTransient           = errs.New("transient gateway failure")
	errRejected            = errs.New("gateway rejected request")
	errDuplicateOrder      = errs.New("order id already exists at gateway")
	errTransactionNotFound = errs.New("transaction not found at gateway")
)

const (
	paymentTypeQRIS   = "qris"
	qrActionName      = "generate-qr-code"
	maxResponseBytes  = 1 << 20
	idempotencyHeader = "Idempotency-Key"
)

type chargeRequest struct {
	PaymentType        string             `json:"payment_type"`
	TransactionDetails transactionDetails `json:"transaction_details"`
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type action struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	URL    string `json:"url"`
}

// TransactionResponse is the body of charge and status responses.
type TransactionResponse struct {
	StatusCode        string   `json:"status_code"`
	StatusMessage     string   `json:"status_message"`
	TransactionID     string   `json:"transaction_id"`
	OrderID           string   `json:"order_id"`
	GrossAmount       string   `json:"gross_amount"`
	TransactionStatus string   `json:"transaction_status"`
	FraudStatus       string   `json:"fraud_status"`
	Actions           []action `json:"actions"`
}

func (r *TransactionResponse) qrURL() string {
	for _, a := range r.Actions {
		if a.Name == qrActionName {
			return a.URL
		}
	}
	return ""
}

// Notification is the asynchronous payment notification body.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

// MapTransactionStatus converts a provider transaction status to a charge status.
func MapTransactionStatus(transactionStatus, fraudStatus string) (charge.Status, bool) {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return charge.StatusConfirmed, true
	case "capture":
		if strings.EqualFold(fraudStatus, "challenge") {
			return charge.StatusPending, true
		}
		return charge.StatusConfirmed, true
	case "pending", "authorize":
		return charge.StatusPending, true
	case "deny", "cancel", "failure", "refund", "partial_refund":
		return charge.StatusFailed, true
	case "expire":
		return charge.StatusExpired, true
	default:
		return "", false
	}
}

// QRISClient talks to the QRIS charge and status endpoints.
type QRISClient struct {
	baseURL   string
	serverKey string
	hc        *http.Client
	logger    *slog.Logger
}

func NewQRISClient(baseURL, serverKey string, timeout time.Duration, logger *slog.Logger) *QRISClient {
	return &QRISClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		serverKey: serverKey,
		hc:        &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// CreateCharge returns the QR url the driver scans.
func (c *QRISClient) CreateCharge(ctx context.Context, orderID string, amount decimal.Decimal) (string, error) {
	body := chargeRequest{
		PaymentType: paymentTypeQRIS,
		TransactionDetails: transactionDetails{
			OrderID:     orderID,
			GrossAmount: amount.Ceil().IntPart(),
		},
	}
	resp, err := c.do(ctx, "charge", http.MethodPost, "/v2/charge", body, orderID)
	if err != nil {
		return "", err
	}
	return resp.qrURL(), nil
}

func (c *QRISClient) Status(ctx context.Context, orderID string) (*TransactionResponse, error) {
	return c.do(ctx, "status", http.MethodGet, "/v2/"+orderID+"/status", nil, "")
}

func (c *QRISClient) do(ctx context.Context, op, method, path string, payload any, idempotencyKey string) (*TransactionResponse, error) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errs.Wrapf(err, "%s: marshal request", op)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errs.Wrapf(err, "%s: build request", op)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.serverKey, "")
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		metrics.RecordGatewayRequest(op, "network_error", time.Since(start).Seconds())
		return nil, errs.Mark(errs.Wrapf(err, "%s: request", op), errTransient)
	}
	defer res.Body.Close()
	metrics.RecordGatewayRequest(op, strconv.Itoa(res.StatusCode), time.Since(start).Seconds())

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "%s: read response", op), errTransient)
	}

	if err := classifyStatus(op, res.StatusCode, ""); err != nil {
		c.logger.Warn("gateway returned error status",
			"op", op,
			"http_status", res.StatusCode,
			"body", truncate(string(raw), 256))
		return nil, err
	}

	var out TransactionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "%s: decode response", op), errTransient)
	}

	// the provider reports failures inside a 200 body as well
	if err := classifyStatus(op, parseStatusCode(out.StatusCode), out.StatusMessage); err != nil {
		c.logger.Warn("gateway reported failure",
			"op", op,
			"status_code", out.StatusCode,
			"status_message", out.StatusMessage)
		return nil, err
	}
	return &out, nil
}

func classifyStatus(op string, code int, message string) error {
	switch {
	case code == 0 || code < 300:
		return nil
	case code == http.StatusTooManyRequests || code >= 500:
		return errs.Mark(errs.Newf("%s: gateway status %d %s", op, code, message), errTransient)
	case code == http.StatusNotFound:
		return errs.Mark(errs.Newf("%s: gateway status %d %s", op, code, message), errTransactionNotFound)
	case code == http.StatusNotAcceptable && op == "charge":
		return errs.Mark(errs.Newf("%s: gateway status %d %s", op, code, message), errDuplicateOrder)
	default:
		return errs.Mark(errs.Newf("%s: gateway status %d %s", op, code, message), errRejected)
	}
}

// parseStatusCode reads the provider's string status code; anything that is
// not a plain number counts as absent.
func parseStatusCode(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func isTransient(err error) bool {
	return errs.Is(err, errTransient)
}
