// Package notification builds the user-facing messages emitted when orders, payments and
// transport legs change.
package notification
