package models

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsValid reports whether p is one of the four known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Todo struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Priority    Priority  `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	UserID      *uint64   `json:"userId"`
	CategoryID  *uint64   `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	User        *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Category    *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags        []TodoTag     `gorm:"foreignKey:TodoID" json:"tags,omitempty"`
	Notes       []Note        `gorm:"foreignKey:TodoID" json:"notes,omitempty"`
	History     []TodoHistory `gorm:"foreignKey:TodoID" json:"history,omitempty"`
	Attachments []Attachment  `gorm:"foreignKey:TodoID" json:"attachments,omitempty"`

	// Self-referential dependency edges. Dependencies are the todos this one
	// depends on; Dependents are the todos that depend on this one.
	Dependencies []TodoDependency `gorm:"foreignKey:TodoID" json:"dependencies,omitempty"`
	Dependents   []TodoDependency `gorm:"foreignKey:DependsOnID" json:"dependents,omitempty"`
}
