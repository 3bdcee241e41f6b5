package gateway

import (
	"errors"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderAPI is the slice of the Razorpay SDK the booking flow touches.
// *requests.Order satisfies it; tests substitute a stub.
type OrderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Client struct {
	Orders    OrderAPI
	KeyID     string
	KeySecret string
}

func NewClient(keyID, keySecret string) *Client {
	rzp := razorpay.NewClient(keyID, keySecret)
	return &Client{
		Orders:    rzp.Order,
		KeyID:     keyID,
		KeySecret: keySecret,
	}
}

// Configured reports whether gateway credentials are present. Handlers
// treat an unconfigured client as a server-side configuration error.
func (cl *Client) Configured() bool {
	return cl != nil && cl.KeyID != "" && cl.KeySecret != ""
}

// Order is the validated result of a create-order call. The SDK hands
// back an untyped map; nothing outside this package sees it.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

var ErrBadResponse = errors.New("gateway returned an unexpected response")

// CreateOrder registers a charge of amountMinor minor currency units
// with the gateway under a unique receipt id.
func (cl *Client) CreateOrder(amountMinor int64, currency, receipt string) (*Order, error) {
	body, err := cl.Orders.Create(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, err
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, ErrBadResponse
	}

	order := &Order{
		ID:       id,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		order.Currency = cur
	}
	return order, nil
}
