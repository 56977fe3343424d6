package models

type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "idle"
	CheckoutStatePurchasing CheckoutState = "purchasing"
	CheckoutStateResolving  CheckoutState = "resolving"
	CheckoutStateResolved   CheckoutState = "resolved"
	CheckoutStateFailed     CheckoutState = "failed"
)

// DebitPolicy decides what happens to the debit when delivery resolution fails.
type DebitPolicy string

const (
	DebitPolicyFinal  DebitPolicy = "final"
	DebitPolicyRefund DebitPolicy = "refund"
)

// ReceiptPolicy decides when a receipt email is sent.
type ReceiptPolicy string

const (
	ReceiptPolicyAlways   ReceiptPolicy = "always"
	ReceiptPolicyResolved ReceiptPolicy = "resolved"
)

type CheckoutPolicy struct {
	Debit   DebitPolicy
	Receipt ReceiptPolicy
}

func ParseCheckoutPolicy(debit, receipt string) CheckoutPolicy {
	policy := CheckoutPolicy{Debit: DebitPolicyFinal, Receipt: ReceiptPolicyAlways}
	if DebitPolicy(debit) == DebitPolicyRefund {
		policy.Debit = DebitPolicyRefund
	}
	if ReceiptPolicy(receipt) == ReceiptPolicyResolved {
		policy.Receipt = ReceiptPolicyResolved
	}
	return policy
}

type CheckoutResult struct {
	State             CheckoutState     `json:"state"`
	Message           string            `json:"message,omitempty"`
	InsufficientFunds bool              `json:"insufficient_funds"`
	ReceiptID         string            `json:"receipt_id,omitempty"`
	Delivery          *ResolvedDelivery `json:"delivery,omitempty"`
	Receipt           *NotifyResult     `json:"receipt,omitempty"`
	Refunded          bool              `json:"refunded,omitempty"`
	Reward            *Reward           `json:"reward,omitempty"`
}

// Fulfillment is what happens after a successful purchase.
type Fulfillment struct {
	Delivery      *ResolvedDelivery
	Receipt       *NotifyResult
	Refunded      bool
	RefundBalance *int64
}
