package registry

import (
	"errors"
	"math/rand/v2"

	"github.com/casetrail/casetrail-backend/pkg/models"
)

// ErrNoLawyers is returned when a case cannot be opened because the lawyer
// pool is empty. The whole creation transaction rolls back on it.
var ErrNoLawyers = errors.New("No lawyers available to assign")

// AssignmentPolicy picks the lawyer a freshly opened case goes to. The pool
// is whatever set of lawyers is registered at call time; weighted or
// round-robin strategies can be dropped in without touching the registry.
type AssignmentPolicy interface {
	Select(pool []models.Lawyer) (models.Lawyer, error)
}

// RandomPolicy selects uniformly at random from the pool.
type RandomPolicy struct{}

func (RandomPolicy) Select(pool []models.Lawyer) (models.Lawyer, error) {
	if len(pool) == 0 {
		return models.Lawyer{}, ErrNoLawyers
	}
	return pool[rand.IntN(len(pool))], nil
}
