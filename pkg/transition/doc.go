// Package transition derives concrete rule models from abstract transitions.
//
// Every abstract transition describes a path of up to eight positions, the
// state exchanges allowed at each position and the movement that turns a
// start occupation into a final one. The builders in this package enumerate
// all physically valid start/final assignments, attach the codes the
// simulation uses to look rules up (state codes, tracker order codes, end
// indexing deltas), link each rule to its logical inverse and aggregate the
// mobility information of the transition.
//
// Kinetic transitions whose mappings do not contain their own inversion get
// an additional inverse transition model. Its rules are the geometric
// inverses of the source rules: the same jump walked along the reversed path.
package transition
