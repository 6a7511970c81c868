// Package services provides domain services that work across aggregates:
// allocation strategies over candidate localities, the in-memory part of the
// assignment workflow, and the ticket to request status cascade.
package services
