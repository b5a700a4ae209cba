package repository

import (
	"time"

	"gorm.io/gorm"

	"paybridge/internal/models"
)

// PaymentRecordRepository handles payment record database operations.
type PaymentRecordRepository struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

// Create inserts a new payment record.
func (r *PaymentRecordRepository) Create(record *models.PaymentRecord) error {
	return r.db.Create(record).Error
}

// FindByOrderNumber returns the record for a merchant order number.
func (r *PaymentRecordRepository) FindByOrderNumber(orderNumber string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.Where("order_number = ?", orderNumber).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByRecTradeID returns the record for a gateway transaction ID.
func (r *PaymentRecordRepository) FindByRecTradeID(recTradeID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.Where("rec_trade_id = ?", recTradeID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns records with pagination and optional status filter.
func (r *PaymentRecordRepository) FindAll(limit, page int, status string) ([]models.PaymentRecord, int64, error) {
	var records []models.PaymentRecord
	var total int64

	db := r.db.Model(&models.PaymentRecord{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	if err := db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindPendingOlderThan returns pending records created before the cutoff, for
// reconciliation. Bounded so a single cron run stays short.
func (r *PaymentRecordRepository) FindPendingOlderThan(cutoff time.Time, limit int) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	if limit <= 0 {
		limit = 20
	}
	err := r.db.
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update saves the given record.
func (r *PaymentRecordRepository) Update(record *models.PaymentRecord) error {
	return r.db.Save(record).Error
}

// UpdateStatusByRecTradeID sets the lifecycle status and gateway status for a
// transaction.
func (r *PaymentRecordRepository) UpdateStatusByRecTradeID(recTradeID, status string, gatewayStatus int, gatewayMsg string) error {
	return r.db.Model(&models.PaymentRecord{}).
		Where("rec_trade_id = ?", recTradeID).
		Updates(map[string]interface{}{
			"status":         status,
			"gateway_status": gatewayStatus,
			"gateway_msg":    gatewayMsg,
		}).Error
}
