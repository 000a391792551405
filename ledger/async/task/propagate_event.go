package task

import (
	"context"
	"time"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/async"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"

	"golang.org/x/sync/errgroup"
)

const (
	// TkPropagateEvent propagates an event envelope to observers
	TkPropagateEvent model.TkName = "PropagateEvent"
)

func init() {
	async.Registrar[TkPropagateEvent] = NewPropagateEvent
}

// PropagateEvent is in charge of propagating an event envelope to all
// configured observer URLs. Observers are best-effort consumers: delivery
// failures are retried but never affect the ledger state that emitted the
// event.
type PropagateEvent struct {
	created time.Time
	token   string
}

// NewPropagateEvent constructs and initializes the task.
func NewPropagateEvent(
	ctx context.Context,
	created time.Time,
	subject string,
) async.Task {
	return &PropagateEvent{
		created: created,
		token:   subject,
	}
}

// Name returns the task name.
func (t *PropagateEvent) Name() model.TkName {
	return TkPropagateEvent
}

// Created returns the task creation time.
func (t *PropagateEvent) Created() time.Time {
	return t.created
}

// Subject returns the task subject.
func (t *PropagateEvent) Subject() string {
	return t.token
}

// MaxRetries returns the max retries for the task.
func (t *PropagateEvent) MaxRetries() uint {
	return 18
}

// DeadlineForRetry returns the deadline for the provided retry count.
func (t *PropagateEvent) DeadlineForRetry(
	retry uint,
) time.Time {
	return t.Created().Add((1<<retry - 1) * time.Second)
}

// Execute idempotently runs the task to completion or errors.
func (t *PropagateEvent) Execute(
	ctx context.Context,
) error {
	client := &ledger.Client{}
	err := client.Init(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	event, err := model.LoadEventByToken(ctx, t.token)
	if err != nil {
		return errors.Trace(err)
	} else if event == nil {
		return errors.Trace(errors.Newf("Event not found: %s", t.token))
	}

	db.Commit(ctx)

	observers := ledger.GetObservers(ctx)
	if len(observers) == 0 {
		return nil
	}

	resource := ledger.NewEventResource(ctx, event)

	g, ctx := errgroup.WithContext(ctx)
	for _, observer := range observers {
		observer := observer
		g.Go(func() error {
			return client.PropagateEvent(ctx, resource, observer)
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Trace(err)
	}

	return nil
}
