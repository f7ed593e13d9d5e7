// Package model defines the read-only reference data consumed by the
// translation builders.
//
// A Snapshot bundles particles, unit cell positions, pair and group
// interactions and the kinetic and metropolis transitions of one project.
// Snapshots are assembled upstream from validated data and must not be
// modified once handed to a builder; several builders read the same
// snapshot concurrently without locking.
//
// # Particles
//
// Particles are addressed by their index. Index 0 is reserved for the void
// particle, which marks positions that are unoccupied in a stable state
// (for example the transition site of a migration path).
package model
