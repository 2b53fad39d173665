// Package testutil provides test doubles and fixtures shared by the
// converter, export and command tests.
package testutil
