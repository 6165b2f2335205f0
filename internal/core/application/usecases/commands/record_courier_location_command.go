package commands

import (
	"errors"
	"fmt"
	"strings"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/pkg/errs"
	"couriertracking/internal/pkg/guard"
)

var (
	ErrRecordCourierLocationCommandIsNotConstructed = errors.New(
		"RecordCourierLocationCommand must be created via NewRecordCourierLocationCommand constructor",
	)
)

// RecordCourierLocationCommand carries one courier ping from an inbound adapter to the
// tracking engine.
//
// Example:
//
//	cmd, err := NewRecordCourierLocationCommand("courier-1", 41.0840, 29.0093, 1700000000000)
//	if err != nil {
//	    return err // 400 at the HTTP boundary
//	}
//	_ = handler.Handle(ctx, cmd)
type RecordCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID string
	location  kernel.Location
	timeMs    int64

	guard guard.ConstructorGuard
}

// NewRecordCourierLocationCommand validates the ping fields: a non-empty courier id,
// coordinates in range and a positive event time in Unix milliseconds.
func NewRecordCourierLocationCommand(
	courierID string,
	latitude, longitude float64,
	timeMs int64,
) (RecordCourierLocationCommand, error) {
	command := RecordCourierLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setLocation(latitude, longitude),
		command.setTime(timeMs),
	); err != nil {
		return RecordCourierLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordCourierLocationCommandIsNotConstructed)
}

// CourierID returns the courier identifier.
func (c RecordCourierLocationCommand) CourierID() string {
	return c.courierID
}

// Location returns the reported position.
func (c RecordCourierLocationCommand) Location() kernel.Location {
	return c.location
}

// TimeMs returns the event time in Unix milliseconds.
func (c RecordCourierLocationCommand) TimeMs() int64 {
	return c.timeMs
}

func (c *RecordCourierLocationCommand) setCourierID(courierID string) error {
	courierID = strings.TrimSpace(courierID)
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierId")
	}
	c.courierID = courierID
	return nil
}

func (c *RecordCourierLocationCommand) setLocation(latitude, longitude float64) error {
	location, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *RecordCourierLocationCommand) setTime(timeMs int64) error {
	if timeMs <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%d is not greater than 0", timeMs))
	}
	c.timeMs = timeMs
	return nil
}
