package salarystructure

import (
	"context"
	"fmt"
	"time"

	structureerrors "go-payroll/internal/salarystructure/errors"

	"golang.org/x/sync/singleflight"
)

// Resolver finds the one active structure for a grade as of a date. A
// payroll run asks the same question once per employee, so concurrent
// lookups for one (company, grade, date) collapse into a single query.
type Resolver struct {
	repo  Repository
	group singleflight.Group
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Resolve(
	ctx context.Context,
	companyID, gradeLevel string,
	asOf time.Time,
) (*SalaryStructure, error) {
	key := fmt.Sprintf("%s:%s:%s", companyID, gradeLevel, asOf.Format("2006-01-02"))

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		matches, err := r.repo.FindActiveByGradeCovering(ctx, companyID, gradeLevel, asOf)
		if err != nil {
			return nil, err
		}

		switch len(matches) {
		case 0:
			return nil, structureerrors.ErrNoApplicableStructure
		case 1:
			return &matches[0], nil
		default:
			// The approval flow guarantees disjoint windows; two matches
			// mean the data is corrupted. Surface, never retry.
			return nil, structureerrors.ErrAmbiguousStructure
		}
	})
	if err != nil {
		return nil, err
	}

	return v.(*SalaryStructure), nil
}
