package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentRecord represents one billing cycle of a tenant in the rent_records table
type RentRecord struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	DocumentID  string          `json:"document_id" gorm:"column:document_id;uniqueIndex;size:36"`
	TenantID    uint            `json:"tenant_id" gorm:"column:tenant_id;index:idx_rent_records_period,priority:3"`
	Tenant      Tenant          `json:"tenant" gorm:"foreignKey:TenantID"`
	Month       int             `json:"month" gorm:"column:month;index:idx_rent_records_period,priority:2"`
	Year        int             `json:"year" gorm:"column:year;index:idx_rent_records_period,priority:1"`
	DueDate     time.Time       `json:"due_date" gorm:"column:due_date"`
	Amount      decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(14,2);default:0"`
	Maintenance decimal.Decimal `json:"maintenance" gorm:"column:maintenance;type:numeric(14,2);default:0"`
	CGST        decimal.Decimal `json:"cgst" gorm:"column:cgst;type:numeric(14,2);default:0"`
	SGST        decimal.Decimal `json:"sgst" gorm:"column:sgst;type:numeric(14,2);default:0"`
	TDS         decimal.Decimal `json:"tds" gorm:"column:tds;type:numeric(14,2);default:0"`
	Total       decimal.Decimal `json:"total" gorm:"column:total;type:numeric(14,2);default:0"`
	Status      string          `json:"status" gorm:"column:status;size:16;default:pending"`
	PaidAt      *time.Time      `json:"paid_at" gorm:"column:paid_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	PublishedAt *time.Time      `json:"published_at"`
}

// TableName sets the insert table name for RentRecord
func (RentRecord) TableName() string {
	return "rent_records"
}
