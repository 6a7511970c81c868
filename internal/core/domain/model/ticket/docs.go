// Package ticket models the redeemable ticket issued with every assignment and
// its delivery sub-state machine.
//
// A ticket is issued Pending with a unique TKT-<year>-<sequence> code. Arrival
// moves it to InProgress; a delivery report resolves it as Delivered, Partial or
// Cancelled. Any operation on a resolved ticket fails with
// errs.ErrAlreadyResolved.
package ticket
