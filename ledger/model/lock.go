// OWNER: mkalbani

package model

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/token"
)

// Lock represents a time lock on the balance of one holder for one asset. A
// holder has at most one lock per asset; locking again overrides the
// previous unlock time. The lock is enforced by transfers as long as the
// unlock time lies strictly in the future.
type Lock struct {
	Token   string
	Created time.Time

	Asset    string    `db:"asset_id"`
	Holder   string    // Holder user address.
	UnlockAt time.Time `db:"unlock_at"`
}

// CreateLock creates and stores a new Lock object.
func CreateLock(
	ctx context.Context,
	asset string,
	holder string,
	unlockAt time.Time,
) (*Lock, error) {
	lock := Lock{
		Token:   token.New("lock"),
		Created: time.Now().UTC(),

		Asset:    asset,
		Holder:   holder,
		UnlockAt: unlockAt.UTC(),
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO locks
  (token, created, asset_id, holder, unlock_at)
VALUES
  (:token, :created, :asset_id, :holder, :unlock_at)
`, lock); err != nil {
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

	return &lock, nil
}

// Save updates the object database representation with the in-memory values.
func (l *Lock) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
UPDATE locks
SET unlock_at = :unlock_at
WHERE token = :token
`, l)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// Delete removes the object from the database.
func (l *Lock) Delete(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
DELETE FROM locks
WHERE token = :token
`, l)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadLockByAssetHolder attempts to load a lock for the given asset ID and
// holder address.
func LoadLockByAssetHolder(
	ctx context.Context,
	asset string,
	holder string,
) (*Lock, error) {
	lock := Lock{
		Asset:  asset,
		Holder: holder,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM locks
WHERE asset_id = :asset_id
  AND holder = :holder
`, lock); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&lock); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &lock, nil
}
