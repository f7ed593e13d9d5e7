// Package energy expands symmetry reduced interaction data into the full
// energy tables consumed by the simulation.
//
// Group interactions are stored upstream as a canonical set of occupations.
// GroupEnergyModelBuilder restores every symmetry equivalent occupation
// using the unique projection orders of the site's point operation group,
// assigns each occupation a 64-bit lookup code and lays the energies out as
// a dense [center particle][lookup code] table.
//
// Pair interactions are translated into square [particle][particle] tables
// by PairEnergyModelBuilder. ContextBuilder runs both builders concurrently.
package energy
