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

// WhitelistEntry represents the presence of an address on the allow-list of
// an asset. The list is an attribute store maintained by the tokenizer and
// surfaced to callers; transfers do not consult it.
type WhitelistEntry struct {
	Token   string
	Created time.Time

	Asset   string `db:"asset_id"`
	Address string
}

// CreateWhitelistEntry creates and stores a new WhitelistEntry object.
func CreateWhitelistEntry(
	ctx context.Context,
	asset string,
	address string,
) (*WhitelistEntry, error) {
	entry := WhitelistEntry{
		Token:   token.New("whitelist"),
		Created: time.Now().UTC(),

		Asset:   asset,
		Address: address,
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO whitelist
  (token, created, asset_id, address)
VALUES
  (:token, :created, :asset_id, :address)
`, entry); err != nil {
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

	return &entry, nil
}

// Delete removes the object from the database.
func (e *WhitelistEntry) Delete(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
DELETE FROM whitelist
WHERE token = :token
`, e)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadWhitelistEntryByAssetAddress attempts to load a whitelist entry for
// the given asset ID and address.
func LoadWhitelistEntryByAssetAddress(
	ctx context.Context,
	asset string,
	address string,
) (*WhitelistEntry, error) {
	entry := WhitelistEntry{
		Asset:   asset,
		Address: address,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM whitelist
WHERE asset_id = :asset_id
  AND address = :address
`, entry); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&entry); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &entry, nil
}

// LoadWhitelistEntriesByAsset loads the allow-list of an asset in insertion
// order.
func LoadWhitelistEntriesByAsset(
	ctx context.Context,
	asset string,
) ([]*WhitelistEntry, error) {
	query := WhitelistEntry{
		Asset: asset,
	}

	ext := db.Ext(ctx, "ledger")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM whitelist
WHERE asset_id = :asset_id
ORDER BY created
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}

	entries := []*WhitelistEntry{}

	defer rows.Close()
	for rows.Next() {
		e := WhitelistEntry{}
		err := rows.StructScan(&e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		entries = append(entries, &e)
	}

	return entries, nil
}
