package models

import "time"

// TodoDependency is a directed edge in the self-referential dependency
// relation: the todo identified by TodoID depends on the one identified by
// DependsOnID. Edges are removed together with either endpoint.
type TodoDependency struct {
	TodoID      uint64    `gorm:"primarykey" json:"todoId"`
	DependsOnID uint64    `gorm:"primarykey" json:"dependsOnId"`
	CreatedAt   time.Time `json:"createdAt"`

	// Relations
	Todo      Todo `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"-"`
	DependsOn Todo `gorm:"foreignKey:DependsOnID;constraint:OnDelete:CASCADE" json:"-"`
}
