package models

import "time"

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TodoID    uint64    `gorm:"not null;index" json:"todoId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Todo Todo `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"-"`
}
