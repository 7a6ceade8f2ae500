package actions

import (
	"context"
	"regexp"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/session"
)

const entityZipcode = "zipcode"

var zipcodePattern = regexp.MustCompile(`^\d{5}$`)

// ValidateZipcode validates the zipcode a form collected. Valid codes are
// stored twice: zipcode drives the current session and last_zipcode
// survives for the welcome-back greeting.
type ValidateZipcode struct {
	Deps
}

func (a *ValidateZipcode) Name() string {
	return "validate_zipcode_form"
}

func (a *ValidateZipcode) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	candidate, ok := trk.Entity(entityZipcode)
	if !ok {
		candidate = trk.TrimmedText()
	}

	if !zipcodePattern.MatchString(candidate) {
		d.Say("That ZIP code doesn't seem valid. Please enter a proper 5-digit US ZIP code.")
		return []protocol.SlotEvent{
			protocol.ClearSlot(session.SlotZipcode),
		}, nil
	}

	return []protocol.SlotEvent{
		protocol.SetSlot(session.SlotZipcode, candidate),
		protocol.SetSlot(session.SlotLastZipcode, candidate),
	}, nil
}
