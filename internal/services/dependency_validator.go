package services

import (
	"fmt"

	"todo-tracker-api/internal/repository"
)

// DependencyValidator checks proposed dependency edges before they are
// committed. The circularity check is deliberately local: it rejects a
// direct reverse edge (B already depends on A while A proposes B) but does
// not walk the transitive closure, so longer cycles pass. This matches the
// historical behavior of the dependency relation and is relied on by
// existing clients.
type DependencyValidator struct {
	todoRepo repository.TodoRepository
}

// NewDependencyValidator creates a new DependencyValidator
func NewDependencyValidator(todoRepo repository.TodoRepository) *DependencyValidator {
	return &DependencyValidator{todoRepo: todoRepo}
}

// Validate fails with ErrSelfDependency when todoID appears in
// dependencyIDs, and with ErrCircularDependency when any proposed dependency
// already holds a direct edge pointing back at todoID.
func (v *DependencyValidator) Validate(todoID uint64, dependencyIDs []uint64) error {
	if len(dependencyIDs) == 0 {
		return nil
	}

	for _, depID := range dependencyIDs {
		if depID == todoID {
			return ErrSelfDependency
		}
	}

	reverse, err := v.todoRepo.DirectDependencyIDs(dependencyIDs, todoID)
	if err != nil {
		return fmt.Errorf("failed to check reverse dependencies: %w", err)
	}
	if len(reverse) > 0 {
		return ErrCircularDependency
	}

	return nil
}
