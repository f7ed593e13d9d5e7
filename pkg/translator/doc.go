// Package translator builds the project context of a snapshot and encodes
// it into a bundle of interop blobs for the simulation engine.
//
// A Builder runs the energy, kinetic and metropolis model builders
// concurrently on an immutable snapshot. An Encoder turns the resulting
// ProjectContext and a list of jobs into a Bundle: named, linearized
// record arrays produced through the marshal service. Bundles are stored
// as CBOR files.
package translator
