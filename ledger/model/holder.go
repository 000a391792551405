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

// Holder represents one entry of the append-ordered holder registry of an
// asset. Addresses are appended when they first receive tokens and never
// removed, even when their balance drops back to zero.
type Holder struct {
	Token   string
	Created time.Time

	Asset    string `db:"asset_id"`
	Address  string
	Position int64 // Append order within the asset registry.
}

// CreateHolder creates and stores a new Holder object.
func CreateHolder(
	ctx context.Context,
	asset string,
	address string,
	position int64,
) (*Holder, error) {
	holder := Holder{
		Token:   token.New("holder"),
		Created: time.Now().UTC(),

		Asset:    asset,
		Address:  address,
		Position: position,
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO holders
  (token, created, asset_id, address, position)
VALUES
  (:token, :created, :asset_id, :address, :position)
`, holder); err != nil {
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

	return &holder, nil
}

// LoadHoldersByAsset loads the holder registry of an asset in append order.
func LoadHoldersByAsset(
	ctx context.Context,
	asset string,
) ([]*Holder, error) {
	query := Holder{
		Asset: asset,
	}

	ext := db.Ext(ctx, "ledger")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM holders
WHERE asset_id = :asset_id
ORDER BY position
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}

	holders := []*Holder{}

	defer rows.Close()
	for rows.Next() {
		h := Holder{}
		err := rows.StructScan(&h)
		if err != nil {
			return nil, errors.Trace(err)
		}
		holders = append(holders, &h)
	}

	return holders, nil
}
