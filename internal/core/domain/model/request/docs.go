// Package request models a claim for a quantity of water.
//
// A Request is created Pending with a category (urgent, normal, commercial)
// that fixes its quantity limits, deadline and priority. Its status then moves
// forward through the pure Transition function:
//
//	Pending -> Assigned -> InProgress -> Completed
//	any non-terminal status -> Cancelled
//
// Assignment and ticket operations drive the same table as manual status
// changes, so an illegal action always fails with errs.ErrInvalidTransition.
package request
