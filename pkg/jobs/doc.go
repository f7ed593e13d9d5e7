// Package jobs turns simulation job configurations into the job records of
// the interop layer.
package jobs
