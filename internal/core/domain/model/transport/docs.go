// Package transport models the single transport leg that carries an order from the
// seller to the buyer: its schedule, estimated arrival, status and environmental
// monitoring.
package transport
