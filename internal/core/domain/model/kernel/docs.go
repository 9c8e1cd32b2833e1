// Package kernel provides the value objects shared by every aggregate of the marketplace core.
//
// The package includes:
//   - UUID: identifier for orders, transactions, transports and users
//   - GeoPoint: a validated latitude/longitude pair with haversine distance
//   - Address: a postal address with optional coordinates
//   - Money: a non-negative decimal amount with two fractional digits
//   - Actor and Role: the authenticated caller of an operation
//   - NewDocumentNumber: formatting of "PO-..." and "TXN-..." numbers
//
// Value objects are immutable and their zero values fail Validate; use the constructors.
package kernel
