package builder

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/statblock"
)

// Export renders the current draft in the requested format
func (o *Orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	reg, err := o.registry.Wait(ctx)
	if err != nil {
		return nil, err
	}

	view := o.view()
	draft := view.Draft

	// checked before deriving so an incomplete draft reports what is missing
	// rather than a derivation failure
	if err := exporters.CheckComplete(draft); err != nil {
		return nil, err
	}

	snap, err := o.derived(ctx, view)
	if err != nil {
		return nil, err
	}

	switch input.Format {
	case exporters.FormatActor:
		out, err := o.actor.Export(ctx, &actor.ExportInput{Draft: draft, Snapshot: snap, Registry: reg})
		if err != nil {
			return nil, err
		}
		slog.Info("Exported actor", "draft_id", draft.ID, "bytes", len(out.JSON))
		return &ExportOutput{Format: input.Format, Data: out.JSON, Actor: out.Actor}, nil

	case exporters.FormatStatblock:
		out, err := o.statblock.Render(ctx, &statblock.RenderInput{Draft: draft, Snapshot: snap, Registry: reg})
		if err != nil {
			return nil, err
		}
		slog.Info("Rendered statblock", "draft_id", draft.ID, "bytes", len(out.Text))
		return &ExportOutput{Format: input.Format, Data: []byte(out.Text)}, nil
	}

	return nil, errors.InvalidArgumentf("unknown export format %q", input.Format).
		WithMeta("formats", exporters.Formats())
}

// Options lists the values Set would accept for field right now
func (o *Orchestrator) Options(ctx context.Context, field character.Field) (*OptionsOutput, error) {
	if _, ok := character.ParseField(string(field)); !ok {
		return nil, errors.InvalidArgumentf("unknown field %q", field)
	}

	reg, err := o.registry.Wait(ctx)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	opts := reg.ResolveChoiceOptions(o.draft)
	o.mu.Unlock()

	return &OptionsOutput{
		Field:       field,
		Values:      opts.For(field),
		Constrained: opts.Constrained(field),
		Limit:       opts.Limit(field),
	}, nil
}

// Subscribe registers fn for every committed change. Notifications arrive
// after the change is derived, in commit order per caller.
func (o *Orchestrator) Subscribe(fn func(ctx context.Context, n *Notification) error) func() {
	handler := func(ctx context.Context, e events.Event) error {
		return fn(ctx, toNotification(e))
	}

	var ids []string
	for _, t := range []string{EventDraftChanged, EventDraftCleared, EventDraftRandomized} {
		ids = append(ids, o.bus.SubscribeFunc(t, 100, handler))
	}

	return func() {
		for _, id := range ids {
			if err := o.bus.Unsubscribe(id); err != nil {
				slog.Warn("Failed to unsubscribe", "subscription_id", id, "error", err)
			}
		}
	}
}

func (o *Orchestrator) publish(ctx context.Context, eventType string, field character.Field, rev uint64, draft *character.Draft, snap *engine.Snapshot) {
	event := events.NewGameEvent(eventType, draft, nil)
	event.Context().Set(contextField, string(field))
	event.Context().Set(contextRevision, rev)
	event.Context().Set(contextSnapshot, snap)

	if err := o.bus.Publish(ctx, event); err != nil {
		slog.Warn("Subscriber failed",
			"event", eventType,
			"revision", rev,
			"error", err)
	}
}

func toNotification(e events.Event) *Notification {
	n := &Notification{Type: e.Type()}
	if d, ok := e.Source().(*character.Draft); ok {
		n.Draft = d
	}
	if v, ok := e.Context().Get(contextField); ok {
		if s, ok := v.(string); ok {
			n.Field = character.Field(s)
		}
	}
	if v, ok := e.Context().Get(contextRevision); ok {
		n.Revision, _ = v.(uint64)
	}
	if v, ok := e.Context().Get(contextSnapshot); ok {
		n.Snapshot, _ = v.(*engine.Snapshot)
	}
	return n
}
