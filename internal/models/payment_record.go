package models

import "time"

// Payment record lifecycle statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentRecord maps to the `payment_record` table. One row per charge sent
// to the gateway; the notify callback and the reconciliation job move it
// through its lifecycle.
type PaymentRecord struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReferenceID   string    `gorm:"column:reference_id;size:64;uniqueIndex" json:"reference_id"`
	OrderNumber   string    `gorm:"column:order_number;size:100;index" json:"order_number"`
	RecTradeID    string    `gorm:"column:rec_trade_id;size:100;index" json:"rec_trade_id"`
	Method        string    `gorm:"column:method;size:20" json:"method"` // "prime" or "token"
	Amount        int64     `gorm:"column:amount" json:"amount"`
	Currency      string    `gorm:"column:currency;size:10" json:"currency"`
	Details       string    `gorm:"column:details;size:500" json:"details"`
	Status        string    `gorm:"column:status;size:20;index" json:"status"`
	GatewayStatus int       `gorm:"column:gateway_status" json:"gateway_status"`
	GatewayMsg    string    `gorm:"column:gateway_msg;size:500" json:"gateway_msg"`
	AuthCode      string    `gorm:"column:auth_code;size:50" json:"auth_code"`
	CardKey       string    `gorm:"column:card_key;size:200" json:"-"`
	CardToken     string    `gorm:"column:card_token;size:200" json:"-"`
	RefundID      string    `gorm:"column:refund_id;size:100" json:"refund_id"`
	RefundAmount  int64     `gorm:"column:refund_amount" json:"refund_amount"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_record"
}

// APIResponse is the envelope for all service API responses.
type APIResponse struct {
	Status bool        `json:"status"`
	Msg    string      `json:"msg"`
	Obj    interface{} `json:"obj"`
}
