package models

import "time"

type Tag struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Todos []TodoTag `gorm:"foreignKey:TagID" json:"-"`
}

// TodoTag is the join row between todos and tags. It carries the timestamp of
// when the tag was assigned, so it is modelled explicitly rather than through
// an implicit many2many table.
type TodoTag struct {
	TodoID     uint64    `gorm:"primarykey" json:"todoId"`
	TagID      uint64    `gorm:"primarykey" json:"tagId"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assignedAt"`

	// Relations
	Todo Todo `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}
