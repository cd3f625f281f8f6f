// Package testutil contains common test utilities.
package testutil
