package models

import "time"

type Attachment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"`
	Filepath  string    `gorm:"type:varchar(500);not null" json:"filepath"`
	MimeType  string    `gorm:"type:varchar(100)" json:"mimeType"`
	TodoID    uint64    `gorm:"not null;index" json:"todoId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Todo Todo `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"-"`
}
