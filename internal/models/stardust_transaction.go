package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	TransactionKindPurchase = "purchase"
	TransactionKindRefund   = "refund"

	TransactionStatusCompleted = "completed"
	TransactionStatusRefunded  = "refunded"
)

// StardustTransaction is one ledger row. The id of a purchase row is the
// receipt id handed back by purchase_reward.
type StardustTransaction struct {
	bun.BaseModel `bun:"table:stardust_transaction,alias:t"`
	ID            string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	StarID        string    `bun:"star_id,type:uuid,notnull" json:"star_id"`
	RewardID      *string   `bun:"reward_id,type:uuid" json:"reward_id"`
	RefundOf      *string   `bun:"refund_of,type:uuid" json:"refund_of,omitempty"`
	Amount        int64     `bun:"amount,notnull" json:"amount"`
	Kind          string    `bun:"kind,notnull" json:"kind"`
	Status        string    `bun:"status,notnull" json:"status"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`

	RewardTitle *string `bun:"reward_title,scanonly" json:"reward_title"`
}

type RefundResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Balance *int64 `json:"balance,omitempty"`
}
