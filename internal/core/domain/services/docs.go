// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - EtaEstimator: straight-line distance and travel time between pickup and delivery
//
// Services here are pure: no I/O, no clock. Callers pass the time in.
package services
