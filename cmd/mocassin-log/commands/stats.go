package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mocassin-sim/mocassin-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	ModelsByKind     map[log.ModelKind]int
	Builds           map[string]*BuildStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// BuildStats holds statistics for a single build.
type BuildStats struct {
	FirstSeen time.Time
	Snapshot  string
	Events    int
	Models    int
	Blobs     int
	BlobBytes int
	Outcome   string
	Duration  time.Duration
}

// CollectStats aggregates the events of the log file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		ModelsByKind:     make(map[log.ModelKind]int),
		Builds:           make(map[string]*BuildStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		build, ok := stats.Builds[event.BuildID]
		if !ok {
			build = &BuildStats{FirstSeen: event.Timestamp, Snapshot: event.Snapshot}
			stats.Builds[event.BuildID] = build
		}
		build.Events++

		switch {
		case event.Model != nil:
			stats.ModelsByKind[event.Model.Kind]++
			build.Models++
		case event.Blob != nil:
			build.Blobs++
			build.BlobBytes += event.Blob.Size
		case event.State != nil && event.Layer == log.LayerBuild && event.State.Stage != log.StageStarted:
			build.Outcome = event.State.Stage.String()
			if event.State.Duration != nil {
				build.Duration = *event.State.Duration
			}
		case event.Error != nil:
			stats.Errors++
		}
	}
	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Build Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerBuild, log.LayerEnergy, log.LayerTransition, log.LayerEncode} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryModel, log.CategoryBlob, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.ModelsByKind) > 0 {
		fmt.Fprintln(w, "Models by Kind:")
		for _, kind := range []log.ModelKind{log.ModelPairEnergy, log.ModelGroupEnergy, log.ModelKinetic, log.ModelMetropolis} {
			if count := stats.ModelsByKind[kind]; count > 0 {
				fmt.Fprintf(w, "  %-14s %d\n", kind.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Builds: %d\n", len(stats.Builds))
	if len(stats.Builds) > 0 {
		type buildInfo struct {
			id    string
			stats *BuildStats
		}
		builds := make([]buildInfo, 0, len(stats.Builds))
		for id, bs := range stats.Builds {
			builds = append(builds, buildInfo{id, bs})
		}
		sort.Slice(builds, func(i, j int) bool {
			return builds[i].stats.FirstSeen.Before(builds[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, b := range builds {
			outcome := b.stats.Outcome
			if outcome == "" {
				outcome = "INCOMPLETE"
			}
			fmt.Fprintf(w, "  [%s] %s, %d events, %d models, %d blobs (%d bytes)\n",
				shortenID(b.id), outcome, b.stats.Events, b.stats.Models, b.stats.Blobs, b.stats.BlobBytes)
			if b.stats.Snapshot != "" {
				fmt.Fprintf(w, "           Snapshot: %s\n", b.stats.Snapshot)
			}
			if b.stats.Duration > 0 {
				fmt.Fprintf(w, "           Duration: %s\n", formatDuration(b.stats.Duration))
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
