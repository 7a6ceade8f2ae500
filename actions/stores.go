package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/resolve"
	"github.com/delivio/actionserver/session"
)

const (
	entityStoreName = "store_name"
	storesPerPage   = 5
)

// NearestStore lists stores that deliver to the user's zipcode and
// snapshots the full list so a follow-up reply can pick one.
type NearestStore struct {
	Deps
}

func (a *NearestStore) Name() string {
	return "action_get_nearest_store"
}

func (a *NearestStore) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	zipcode, ok := trk.Slots.String(session.SlotZipcode)
	if !ok {
		d.Say("Please provide your ZIP code so I can find stores near you.")
		return nil, nil
	}

	term, _ := trk.Entity(entityStoreName)

	stores, err := a.Backend.NearestStores(ctx, zipcode, term)
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error(), "zipcode": zipcode},
		})
		d.Say("Sorry, I couldn't look up stores right now.")
		return nil, nil
	}

	cache := resolve.Stores()
	if len(stores) == 0 {
		d.Say("Sorry, I couldn't find any stores near that ZIP code.")
		return []protocol.SlotEvent{
			cache.Snapshot(nil),
			protocol.ClearSlot(session.SlotSelectedStore),
		}, nil
	}

	shown := stores
	if len(shown) > storesPerPage {
		shown = shown[:storesPerPage]
	}

	lines := make([]string, 0, len(shown))
	for i, store := range shown {
		line := fmt.Sprintf("%d. %s", i+1, store.Name())
		if addr := store.Address(); addr != "" {
			line += " - " + addr
		}
		lines = append(lines, line)
	}

	d.Say("Here are stores near you:\n" + strings.Join(lines, "\n"))
	d.Say("Reply with the store number or name to select it.")
	return []protocol.SlotEvent{
		cache.Snapshot(stores),
		protocol.ClearSlot(session.SlotSelectedStore),
	}, nil
}

// SetSelectedStore resolves the user's reply against the last store listing
// and pins the chosen store for subsequent turns.
type SetSelectedStore struct {
	Deps
}

func (a *SetSelectedStore) Name() string {
	return "action_set_selected_store"
}

func (a *SetSelectedStore) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	candidates := resolve.Stores().Candidates(trk.Slots)
	if len(candidates) == 0 {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventSnapshotEmpty,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    a.Name(),
		})
		d.Say("I don't have any store list in memory, please search for stores first.")
		return nil, nil
	}

	store, ok := resolve.Match(trk.TrimmedText(), candidates)
	if !ok {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventSelectionMiss,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"text": trk.TrimmedText()},
		})
		d.Say("I couldn't match that to a store from the list. Please reply with the store number or name.")
		return []protocol.SlotEvent{
			protocol.ClearSlot(session.SlotSelectedStore),
		}, nil
	}

	d.Say(fmt.Sprintf("You have selected %s located at %s.", store.Name(), store.Address()))
	return []protocol.SlotEvent{
		protocol.SetSlot(session.SlotSelectedStore, store),
		protocol.SetSlot(session.SlotStoreContext, true),
	}, nil
}

// RecallPreviousLocation greets returning users with their remembered
// zipcode and store, when both survive from an earlier session.
type RecallPreviousLocation struct {
	Deps
}

func (a *RecallPreviousLocation) Name() string {
	return "action_recall_previous_location"
}

func (a *RecallPreviousLocation) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	zipcode, hasZip := trk.Slots.String(session.SlotLastZipcode)
	store, hasStore := resolve.Selection(trk.Slots, session.SlotSelectedStore)
	if !hasZip || !hasStore {
		d.Say("Welcome! How can I assist you today?")
		return nil, nil
	}

	d.Say(fmt.Sprintf("Welcome back! Last time you shopped at %s in ZIP code %s. Would you like to continue there?",
		store.Name(), zipcode))
	return nil, nil
}
