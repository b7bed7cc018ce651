// Package pay talks to the Tinkoff acquiring API. Premium purchases open a
// payment session through Init; the provider reports the outcome to our
// webhook, authenticated with the same request-token scheme used for
// outgoing calls.
package pay

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Client signs and posts requests for one merchant terminal.
type Client struct {
	TerminalKey string
	Password    string
	BaseURL     string
	HTTPClient  *http.Client
}

// Field names below are fixed by the provider protocol.

type InitRequest struct {
	TerminalKey     string `json:"TerminalKey"`
	Amount          int64  `json:"Amount"`
	OrderID         string `json:"OrderId"`
	Description     string `json:"Description,omitempty"`
	SuccessURL      string `json:"SuccessURL,omitempty"`
	FailURL         string `json:"FailURL,omitempty"`
	NotificationURL string `json:"NotificationURL,omitempty"`
	CustomerKey     string `json:"CustomerKey,omitempty"`
}

type InitResponse struct {
	Success    bool   `json:"Success"`
	Status     string `json:"Status"`
	PaymentID  string `json:"PaymentId"`
	PaymentURL string `json:"PaymentURL"`
	Message    string `json:"Message,omitempty"`
	Details    string `json:"Details,omitempty"`
}

type StateRequest struct {
	TerminalKey string `json:"TerminalKey"`
	PaymentID   string `json:"PaymentId"`
}

type StateResponse struct {
	Success   bool   `json:"Success"`
	Status    string `json:"Status"`
	PaymentID string `json:"PaymentId"`
	OrderID   string `json:"OrderId"`
	Message   string `json:"Message,omitempty"`
	Details   string `json:"Details,omitempty"`
}

func NewClient(terminalKey, password string) *Client {
	return &Client{
		TerminalKey: terminalKey,
		Password:    password,
		BaseURL:     "https://securepay.tinkoff.ru/v2",
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Init opens a payment session for a premium order and returns the hosted
// payment page URL the customer is sent to.
func (c *Client) Init(req InitRequest) (InitResponse, error) {
	req.TerminalKey = c.TerminalKey
	payload, err := withToken(c.Password, req)
	if err != nil {
		return InitResponse{}, err
	}
	var resp InitResponse
	if err := c.call("/Init", payload, &resp); err != nil {
		return InitResponse{}, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("init failed: %s %s", resp.Message, resp.Details)
	}
	return resp, nil
}

// GetState asks the provider for the current status of a payment, used when
// a webhook delivery is in doubt.
func (c *Client) GetState(paymentID string) (StateResponse, error) {
	req := StateRequest{TerminalKey: c.TerminalKey, PaymentID: paymentID}
	payload, err := withToken(c.Password, req)
	if err != nil {
		return StateResponse{}, err
	}
	var resp StateResponse
	if err := c.call("/GetState", payload, &resp); err != nil {
		return StateResponse{}, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("get state failed: %s %s", resp.Message, resp.Details)
	}
	return resp, nil
}

// VerifyToken authenticates an incoming webhook payload: the recomputed
// request token must match the one the provider sent.
func (c *Client) VerifyToken(data map[string]any, token string) bool {
	return strings.EqualFold(requestToken(c.Password, data), token)
}

func (c *Client) call(path string, payload map[string]any, out any) error {
	b, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(out)
}

// withToken flattens a request into the provider's map form and attaches
// the request token.
func withToken(password string, req any) (map[string]any, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["Token"] = requestToken(password, m)
	return m, nil
}

// requestToken implements the provider's signing scheme: top-level values
// plus the terminal password, concatenated in key order, hashed with
// sha256. The Token field itself is excluded.
func requestToken(password string, m map[string]any) string {
	keys := make([]string, 0, len(m)+1)
	for k := range m {
		if strings.EqualFold(k, "Token") {
			continue
		}
		keys = append(keys, k)
	}
	keys = append(keys, "Password")
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if k == "Password" {
			b.WriteString(password)
			continue
		}
		b.WriteString(tokenValue(m[k]))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// tokenValue renders one payload value the way the provider hashes it.
// Numbers arrive as float64 after a JSON round trip and must render without
// a fraction.
func tokenValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', 0, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
