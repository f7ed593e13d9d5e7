package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{Timestamp: time.Now(), BuildID: "b", Layer: LayerBuild, Category: CategoryState}
	logger.Log(event)

	event.State = &StateEvent{Stage: StageStarted}
	logger.Log(event)

	event.State = nil
	event.Model = &ModelEvent{Kind: ModelKinetic}
	logger.Log(event)

	event.Model = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
