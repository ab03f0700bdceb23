// Package testutil provides deterministic helpers shared by tests and
// drivers: a seeded random source and random problem vectors.
package testutil
