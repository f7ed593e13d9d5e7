// Package symmetry is the port to the crystallographic symmetry service.
//
// The translation core does not compute symmetry operations itself. It asks
// a Service for the point operation group of a site and the position
// sequence around it, and uses the group's unique self projection orders to
// restore symmetry reduced occupation data.
//
// StaticService answers from a precomputed table, CachedService puts an LRU
// cache in front of any Service.
package symmetry
