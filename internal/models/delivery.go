package models

// ResolvedDelivery is the artifact shown to the buyer once a purchase is
// resolved.
type ResolvedDelivery struct {
	OK      bool         `json:"ok" msgpack:"ok"`
	Type    DeliveryType `json:"type,omitempty" msgpack:"type"`
	Code    string       `json:"code,omitempty" msgpack:"code"`
	Link    string       `json:"link,omitempty" msgpack:"link"`
	Message string       `json:"message,omitempty" msgpack:"message"`
}

func ResolvedCode(code string) *ResolvedDelivery {
	return &ResolvedDelivery{OK: true, Type: DeliveryTypeCode, Code: code}
}

func ResolvedLink(link string) *ResolvedDelivery {
	return &ResolvedDelivery{OK: true, Type: DeliveryTypeLink, Link: link}
}

func ResolvedFetch(message string) *ResolvedDelivery {
	return &ResolvedDelivery{OK: true, Type: DeliveryTypeFetch, Message: message}
}

func ResolveFailed(message string) *ResolvedDelivery {
	return &ResolvedDelivery{OK: false, Message: message}
}

// Detail is the redemption line embedded in the receipt, nil when there is
// nothing to redeem.
func (r *ResolvedDelivery) Detail() *RewardDetail {
	if r == nil || !r.OK {
		return nil
	}
	switch r.Type {
	case DeliveryTypeCode:
		return &RewardDetail{Code: r.Code}
	case DeliveryTypeLink:
		return &RewardDetail{Link: r.Link}
	}
	return nil
}

// StoredDelivery is a resolved delivery kept for re-display by its owner.
type StoredDelivery struct {
	StarID    string            `msgpack:"star_id" json:"-"`
	ReceiptID string            `msgpack:"receipt_id" json:"receipt_id"`
	Delivery  *ResolvedDelivery `msgpack:"delivery" json:"delivery"`
}
