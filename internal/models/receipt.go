package models

import "time"

type Receipt struct {
	To       string           `json:"to" validate:"required,emailshape"`
	Name     string           `json:"name,omitempty"`
	OrderID  string           `json:"order_id"`
	Date     time.Time        `json:"date"`
	Total    int64            `json:"total"`
	Products []ReceiptProduct `json:"products"`
}

type ReceiptProduct struct {
	Title                string        `json:"title"`
	Description          *string       `json:"description"`
	Price                int64         `json:"price"`
	ImageURL             *string       `json:"image_url"`
	DeliveryInstructions *string       `json:"delivery_instructions"`
	RewardDetail         *RewardDetail `json:"reward_detail,omitempty"`
}

type RewardDetail struct {
	Code string `json:"code,omitempty"`
	Link string `json:"link,omitempty"`
}

type NotifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
