// Package kernel provides the domain primitives shared by every aggregate of
// the water delivery engine.
//
// The package includes:
//   - UUID: an immutable identifier value object backed by github.com/google/uuid
//   - Clock: the time source injected into aggregates and use cases
//
// Zero values of these primitives are invalid and are rejected by Validate,
// which keeps aggregates from being persisted with missing identity.
package kernel
