package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

const (
	DefaultRequestsLimit = 100
	MaxRequestsLimit     = 500
)

var ErrGetRequestsQueryIsNotConstructed = errors.New(
	"GetRequestsQuery must be created via NewGetRequestsQuery constructor",
)

// GetRequestsQuery lists requests newest first, optionally narrowed to one
// status or one requester.
type GetRequestsQuery struct {
	status      *request.Status
	requesterID *kernel.UUID
	limit       int

	guard guard.ConstructorGuard
}

// NewGetRequestsQuery accepts nil filters. A limit of zero means
// DefaultRequestsLimit.
func NewGetRequestsQuery(status *request.Status, requesterID *kernel.UUID, limit int) (GetRequestsQuery, error) {
	var requesterErr, limitErr error
	if requesterID != nil {
		requesterErr = requesterID.Validate()
	}
	if limit == 0 {
		limit = DefaultRequestsLimit
	}
	if limit < 0 || limit > MaxRequestsLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRequestsLimit)
	}
	if err := errors.Join(requesterErr, limitErr); err != nil {
		return GetRequestsQuery{}, err
	}

	return GetRequestsQuery{
		status:      status,
		requesterID: requesterID,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestsQueryIsNotConstructed)
}

func (q GetRequestsQuery) Limit() int { return q.limit }
