package commands

import (
	"context"

	"couriertracking/internal/core/application/tracking"
)

// RecordCourierLocationCommandHandler hands validated pings to the tracking engine.
type RecordCourierLocationCommandHandler struct {
	recorder PingRecorder
}

// NewRecordCourierLocationCommandHandler creates the handler.
func NewRecordCourierLocationCommandHandler(recorder PingRecorder) RecordCourierLocationCommandHandler {
	return RecordCourierLocationCommandHandler{recorder: recorder}
}

// Handle records the ping. Storage failures inside the engine are not reported here;
// the returned error is either a validation error or ctx cancellation.
func (h RecordCourierLocationCommandHandler) Handle(ctx context.Context, cmd RecordCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return h.recorder.RecordPing(ctx, tracking.Ping{
		CourierID: cmd.CourierID(),
		Location:  cmd.Location(),
		TimeMs:    cmd.TimeMs(),
	})
}
