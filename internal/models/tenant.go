package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant represents the tenants table
type Tenant struct {
	ID              uint            `json:"id" gorm:"primarykey"`
	DocumentID      string          `json:"document_id" gorm:"column:document_id;uniqueIndex;size:36"`
	FullName        string          `json:"full_name" gorm:"column:full_name"`
	Email           string          `json:"email" gorm:"column:email"`
	Phone           string          `json:"phone" gorm:"column:phone"`
	Address         string          `json:"address" gorm:"column:address"`
	Floor           string          `json:"floor" gorm:"column:floor"`
	UnitNumber      string          `json:"unit_number" gorm:"column:unit_number"`
	CompanyName     string          `json:"company_name" gorm:"column:company_name"`
	LeaseStartDate  *time.Time      `json:"lease_start_date" gorm:"column:lease_start_date"`
	LeaseEndDate    *time.Time      `json:"lease_end_date" gorm:"column:lease_end_date"`
	Rent            decimal.Decimal `json:"rent" gorm:"column:rent;type:numeric(14,2);default:0"`
	Maintenance     decimal.Decimal `json:"maintenance" gorm:"column:maintenance;type:numeric(14,2);default:0"`
	CGST            decimal.Decimal `json:"cgst" gorm:"column:cgst;type:numeric(14,2);default:0"`
	SGST            decimal.Decimal `json:"sgst" gorm:"column:sgst;type:numeric(14,2);default:0"`
	TDS             decimal.Decimal `json:"tds" gorm:"column:tds;type:numeric(14,2);default:0"`
	Total           decimal.Decimal `json:"total" gorm:"column:total;type:numeric(14,2);default:0"`
	SecurityDeposit decimal.Decimal `json:"security_deposit" gorm:"column:security_deposit;type:numeric(14,2);default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	PublishedAt     *time.Time      `json:"published_at"`
}

// TableName sets the insert table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
