package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/token"
)

// Event represents a domain event recorded by a mutating operation, exactly
// one per operation. Events are written in the operation transaction and
// propagated to the configured observers asynchronously after commit. The
// UUID is the envelope ID observers can deduplicate on across delivery
// retries.
type Event struct {
	Token   string
	Created time.Time

	UUID    string
	Asset   string `db:"asset_id"`
	Kind    EvKind
	Payload string // JSON tuple of primitive values.
}

// CreateEvent creates and stores a new Event object.
func CreateEvent(
	ctx context.Context,
	asset string,
	kind EvKind,
	payload string,
) (*Event, error) {
	event := Event{
		Token:   token.New("event"),
		Created: time.Now().UTC(),

		UUID:    uuid.New().String(),
		Asset:   asset,
		Kind:    kind,
		Payload: payload,
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO events
  (token, created, uuid, asset_id, kind, payload)
VALUES
  (:token, :created, :uuid, :asset_id, :kind, :payload)
`, event); err != nil {
		switch err := err.(type) {
		case *pq.Error:
			if err.Code.Name() == "unique_violation" {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		case sqlite3.Error:
			if err.ExtendedCode == sqlite3.ErrConstraintUnique {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		}
		return nil, errors.Trace(err)
	}

	return &event, nil
}

// LoadEventByToken attempts to load an event with the given event token.
func LoadEventByToken(
	ctx context.Context,
	tk string,
) (*Event, error) {
	event := Event{
		Token: tk,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM events
WHERE token = :token
`, event); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&event); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &event, nil
}

// LoadEventsByAsset loads the events recorded for an asset in creation
// order.
func LoadEventsByAsset(
	ctx context.Context,
	asset string,
) ([]*Event, error) {
	query := Event{
		Asset: asset,
	}

	ext := db.Ext(ctx, "ledger")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM events
WHERE asset_id = :asset_id
ORDER BY created
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}

	events := []*Event{}

	defer rows.Close()
	for rows.Next() {
		e := Event{}
		err := rows.StructScan(&e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		events = append(events, &e)
	}

	return events, nil
}
