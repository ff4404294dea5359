package payos

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Webhook is the raw callback body: a data object plus its HMAC signature.
type Webhook struct {
	Code      string          `json:"code"`
	Desc      string          `json:"desc"`
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

// WebhookData is the verified payment event.
type WebhookData struct {
	OrderCode int64  `json:"orderCode"`
	Amount    int64  `json:"amount"`
	Code      string `json:"code"` // "00" = payment succeeded
	Desc      string `json:"desc"`
	Reference string `json:"reference"`
}

// VerifyWebhook checks the payload signature against the checksum key and
// returns the decoded event. The signature is HMAC-SHA256 over the data
// object rendered as "k1=v1&k2=v2&..." with keys sorted alphabetically.
func (c *Client) VerifyWebhook(raw []byte) (*WebhookData, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	var wh Webhook
	if err := json.Unmarshal(raw, &wh); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	if len(wh.Data) == 0 || wh.Signature == "" {
		return nil, ErrInvalidSignature
	}

	canonical, err := canonicalize(wh.Data)
	if err != nil {
		return nil, fmt.Errorf("canonicalize webhook data: %w", err)
	}
	expected := c.sign(canonical)
	if !hmac.Equal([]byte(expected), []byte(wh.Signature)) {
		return nil, ErrInvalidSignature
	}

	var data WebhookData
	if err := json.Unmarshal(wh.Data, &data); err != nil {
		return nil, fmt.Errorf("decode webhook data: %w", err)
	}
	return &data, nil
}

func (c *Client) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(c.checksumKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// canonicalize renders a JSON object as sorted key=value pairs. Numbers keep
// their original representation (json.Number); null becomes the empty
// string; nested values are re-encoded as JSON.
func canonicalize(data json.RawMessage) (string, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return "", err
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+stringify(obj[k]))
	}
	return strings.Join(pairs, "&"), nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
