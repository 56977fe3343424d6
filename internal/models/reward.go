package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type DeliveryType string

const (
	DeliveryTypeCode  DeliveryType = "code"
	DeliveryTypeLink  DeliveryType = "link"
	DeliveryTypeFetch DeliveryType = "fetch"
)

func (t DeliveryType) Valid() bool {
	return t == DeliveryTypeCode || t == DeliveryTypeLink || t == DeliveryTypeFetch
}

type UsageType string

const (
	UsageTypeSingleUse UsageType = "single_use"
	UsageTypeMultiUse  UsageType = "multi_use"
)

type Reward struct {
	bun.BaseModel        `bun:"table:reward,alias:r"`
	ID                   string          `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ListerID             string          `bun:"lister_id,type:uuid,notnull" json:"lister_id"`
	Title                string          `bun:"title,notnull" json:"title"`
	Description          *string         `bun:"description" json:"description"`
	ImageURL             []string        `bun:"image_url,array" json:"image_url"`
	Price                int64           `bun:"price,notnull" json:"price"`
	DeliveryType         DeliveryType    `bun:"delivery_type,notnull" json:"delivery_type"`
	UsageType            UsageType       `bun:"usage_type,notnull" json:"usage_type"`
	DeliveryData         json.RawMessage `bun:"delivery_data,type:jsonb" json:"-"` // codes, links or one fetch descriptor
	DeliveryInstructions *string         `bun:"delivery_instructions" json:"delivery_instructions"`
	IsActive             bool            `bun:"is_active,notnull,default:true" json:"is_active"`
	StockTotal           int             `bun:"stock_total,notnull,default:0" json:"stock_total"`
	UsedTotal            int             `bun:"used_total,notnull,default:0" json:"used_total"`
	CreatedAt            time.Time       `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt            time.Time       `bun:"updated_at,default:current_timestamp" json:"updated_at"`

	ListerStarName    *string `bun:"lister_star_name,scanonly" json:"lister_star_name"`
	ListerDisplayName *string `bun:"lister_display_name,scanonly" json:"lister_display_name"`
	ListerAvatarURL   *string `bun:"lister_avatar_url,scanonly" json:"lister_avatar_url"`
	OutOfStock        bool    `bun:"-" json:"out_of_stock"`
}

func (r *Reward) IsOutOfStock() bool {
	return r.UsedTotal >= r.StockTotal
}

// FirstImage returns the cover image used on receipts.
func (r *Reward) FirstImage() *string {
	if len(r.ImageURL) == 0 || r.ImageURL[0] == "" {
		return nil
	}
	return &r.ImageURL[0]
}

// RewardLite is the reward summary the client sends along with a purchase
// to be resolved.
type RewardLite struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Description          *string `json:"description"`
	ImageURL             *string `json:"image_url"`
	DeliveryInstructions *string `json:"delivery_instructions"`
	Price                int64   `json:"price"`
}

func (r *Reward) Lite() *RewardLite {
	return &RewardLite{
		ID:                   r.ID,
		Title:                r.Title,
		Description:          r.Description,
		ImageURL:             r.FirstImage(),
		DeliveryInstructions: r.DeliveryInstructions,
		Price:                r.Price,
	}
}
