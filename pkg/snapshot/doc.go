// Package snapshot loads reference data snapshots from YAML documents.
//
// A document lists particles, unit cell positions, interactions and
// transitions by index and refers to them by index. The loader resolves
// those references into a model.Snapshot, a symmetry service holding the
// listed point groups and the simulation jobs of the document.
package snapshot
