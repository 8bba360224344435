package models

import (
	"time"
)

// Scheduler run states written to scheduler_logs
const (
	SchedulerStatusStart   = "START"
	SchedulerStatusRunning = "RUNNING"
	SchedulerStatusSuccess = "SUCCESS"
	SchedulerStatusFailed  = "FAILED"
)

// SchedulerLog represents one state change of a scheduled job run
type SchedulerLog struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	DocumentID string    `json:"document_id" gorm:"column:document_id;index;size:36"`
	JobCode    string    `json:"job_code" gorm:"column:job_code;size:64"`
	Message    string    `json:"message" gorm:"column:message"`
	Status     string    `json:"status" gorm:"column:status;size:16"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the insert table name for SchedulerLog
func (SchedulerLog) TableName() string {
	return "scheduler_logs"
}
