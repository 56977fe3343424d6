package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidFetchDescriptor = errors.New("fetch descriptor must be a url string or an object")

// PurchaseResult is the outcome of one purchase_reward call. Rejections are
// data (Success false), not errors.
type PurchaseResult struct {
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Type      DeliveryType  `json:"type,omitempty"`
	Data      *DeliveryData `json:"data,omitempty"`
	ReceiptID string        `json:"receipt_id,omitempty"`
	Balance   *int64        `json:"balance,omitempty"`
	Price     *int64        `json:"price,omitempty"`
}

type DeliveryData struct {
	Code  string           `json:"code,omitempty"`
	Link  string           `json:"link,omitempty"`
	Fetch *FetchDescriptor `json:"fetch,omitempty"`
}

// Validate checks the shape of a successful purchase received from a client.
func (p *PurchaseResult) Validate() error {
	if !p.Success {
		return nil
	}
	if !p.Type.Valid() {
		return errors.New("unknown delivery type")
	}
	if p.Data == nil {
		return errors.New("missing delivery data")
	}
	switch p.Type {
	case DeliveryTypeCode:
		if p.Data.Code == "" {
			return errors.New("missing code")
		}
	case DeliveryTypeLink:
		if p.Data.Link == "" {
			return errors.New("missing link")
		}
	}
	return nil
}

// FetchDescriptor tells the resolver which third-party endpoint fulfills a
// reward. On the wire it is either a bare url string or an object.
type FetchDescriptor struct {
	URL     string            `json:"url"`
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

func (d *FetchDescriptor) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ErrInvalidFetchDescriptor
	}

	switch b[0] {
	case '"':
		var url string
		if err := json.Unmarshal(b, &url); err != nil {
			return err
		}
		*d = FetchDescriptor{URL: url}
		return nil
	case '{':
		type descriptor FetchDescriptor
		var v descriptor
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*d = FetchDescriptor(v)
		return nil
	}

	return ErrInvalidFetchDescriptor
}
