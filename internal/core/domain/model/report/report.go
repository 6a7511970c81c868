// Package report models locality report snapshots produced by the report
// command log. A snapshot is immutable; undoing its generation deletes it.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrReportIsNotConstructed is returned when a Report was not created through
// NewReport or RestoreReport.
var ErrReportIsNotConstructed = errors.New("Report must be created via NewReport constructor")

// Kind is the reporting window requested by a manager.
type Kind string

const (
	Daily   Kind = "daily"
	Weekly  Kind = "weekly"
	Monthly Kind = "monthly"
	Custom  Kind = "custom"
)

// KindFromString parses a report kind.
func KindFromString(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case Daily, Weekly, Monthly, Custom:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"kind", fmt.Errorf("%q is not one of daily, weekly, monthly, custom", s))
	}
}

// Period is an inclusive time window.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod rejects windows whose start is after their end.
func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, errs.NewValueIsRequiredError("period")
	}
	if start.After(end) {
		return Period{}, errs.NewValueIsInvalidErrorWithCause(
			"period", fmt.Errorf("start %s is after end %s", start.Format(time.DateOnly), end.Format(time.DateOnly)))
	}
	return Period{Start: start.UTC(), End: end.UTC()}, nil
}

// Metrics are the computed figures of a report.
type Metrics struct {
	TotalRequests          int             `json:"totalRequests"`
	RequestedLiters        int             `json:"requestedLiters"`
	DeliveredLiters        int             `json:"deliveredLiters"`
	RequestsByCategory     map[string]int  `json:"requestsByCategory"`
	FulfilmentRatio        decimal.Decimal `json:"fulfilmentRatio"`
	AverageRequestedLiters decimal.Decimal `json:"averageRequestedLiters"`
}

// NewMetrics derives the ratio and average from raw totals, rounded to two places.
func NewMetrics(totalRequests, requestedLiters, deliveredLiters int, byCategory map[string]int) Metrics {
	if byCategory == nil {
		byCategory = map[string]int{}
	}

	m := Metrics{
		TotalRequests:          totalRequests,
		RequestedLiters:        requestedLiters,
		DeliveredLiters:        deliveredLiters,
		RequestsByCategory:     byCategory,
		FulfilmentRatio:        decimal.Zero,
		AverageRequestedLiters: decimal.Zero,
	}
	if requestedLiters > 0 {
		m.FulfilmentRatio = decimal.NewFromInt(int64(deliveredLiters)).
			Div(decimal.NewFromInt(int64(requestedLiters))).Round(2)
	}
	if totalRequests > 0 {
		m.AverageRequestedLiters = decimal.NewFromInt(int64(requestedLiters)).
			Div(decimal.NewFromInt(int64(totalRequests))).Round(2)
	}
	return m
}

// Report is a persisted snapshot of locality metrics for a period.
type Report struct {
	id          kernel.UUID
	localityID  kernel.UUID
	managerID   kernel.UUID
	kind        Kind
	period      Period
	metrics     Metrics
	generatedAt time.Time

	guard guard.ConstructorGuard
}

// NewReport creates a snapshot.
func NewReport(
	id, localityID, managerID kernel.UUID,
	kind Kind,
	period Period,
	metrics Metrics,
	generatedAt time.Time,
) (*Report, error) {
	var kindErr error
	if _, err := KindFromString(string(kind)); err != nil {
		kindErr = err
	}
	var periodErr error
	if period.Start.After(period.End) {
		periodErr = errs.NewValueIsInvalidError("period")
	}

	if err := errors.Join(
		id.Validate(),
		localityID.Validate(),
		managerID.Validate(),
		kindErr,
		periodErr,
	); err != nil {
		return nil, err
	}

	return &Report{
		id:          id,
		localityID:  localityID,
		managerID:   managerID,
		kind:        kind,
		period:      period,
		metrics:     metrics,
		generatedAt: generatedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreReport rebuilds a report loaded from storage.
func RestoreReport(
	id, localityID, managerID kernel.UUID,
	kind Kind,
	period Period,
	metrics Metrics,
	generatedAt time.Time,
) (*Report, error) {
	return NewReport(id, localityID, managerID, kind, period, metrics, generatedAt)
}

// Validate ensures the report was built by a constructor.
func (r *Report) Validate() error {
	if r == nil {
		return ErrReportIsNotConstructed
	}
	return r.guard.Validate(ErrReportIsNotConstructed)
}

func (r *Report) ID() kernel.UUID         { return r.id }
func (r *Report) LocalityID() kernel.UUID { return r.localityID }
func (r *Report) ManagerID() kernel.UUID  { return r.managerID }
func (r *Report) Kind() Kind              { return r.kind }
func (r *Report) Period() Period          { return r.period }
func (r *Report) Metrics() Metrics        { return r.metrics }
func (r *Report) GeneratedAt() time.Time  { return r.generatedAt }

// Summary is a one-line description used by the audit trail.
func (r *Report) Summary() string {
	return fmt.Sprintf("report %s: %d requests, %d liters requested, %d delivered",
		r.id, r.metrics.TotalRequests, r.metrics.RequestedLiters, r.metrics.DeliveredLiters)
}
