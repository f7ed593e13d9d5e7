// Package commands implements the mocassin-log CLI commands.
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

// ParseLayerFlag parses a layer name (build, energy, transition, encode).
func ParseLayerFlag(s string) (log.Layer, error) {
	l, ok := log.ParseLayer(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid layer: %s (must be build, energy, transition or encode)", s)
	}
	return l, nil
}

// ParseCategoryFlag parses a category name (model, blob, state, error).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be model, blob, state or error)", s)
	}
	return c, nil
}

// FilterOptions holds the textual filter flags shared by the commands.
type FilterOptions struct {
	BuildID   string
	Snapshot  string
	TimeStart string
	TimeEnd   string
	Layer     string
	Category  string
}

// Filter converts the options into a log filter.
func (o FilterOptions) Filter() (log.Filter, error) {
	filter := log.Filter{BuildID: o.BuildID, Snapshot: o.Snapshot}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Layer != "" {
		l, err := ParseLayerFlag(o.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// shortenID returns the first 8 characters of a build ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration with a unit matching its size.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
