package models

import "time"

type HistoryAction string

const (
	HistoryCreated   HistoryAction = "CREATED"
	HistoryUpdated   HistoryAction = "UPDATED"
	HistoryCompleted HistoryAction = "COMPLETED"
	HistoryReopened  HistoryAction = "REOPENED"
)

// TodoHistory is an append-only audit row. Rows are never updated, only
// created alongside the mutation they describe and cascade-deleted with
// their todo.
type TodoHistory struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	TodoID      uint64        `gorm:"not null;index" json:"todoId"`
	Action      HistoryAction `gorm:"type:varchar(20);not null" json:"action"`
	Description string        `gorm:"type:text" json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`

	// Relations
	Todo Todo `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"-"`
}
