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

// Metadata represents the descriptive metadata of a tokenized asset, stored
// as given at tokenization.
type Metadata struct {
	Token   string
	Created time.Time

	Asset       string `db:"asset_id"`
	Name        string
	Description string
	Type        MdType
}

// CreateMetadata creates and stores a new Metadata object.
func CreateMetadata(
	ctx context.Context,
	asset string,
	name string,
	description string,
	mdType MdType,
) (*Metadata, error) {
	metadata := Metadata{
		Token:   token.New("metadata"),
		Created: time.Now().UTC(),

		Asset:       asset,
		Name:        name,
		Description: description,
		Type:        mdType,
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO metadata
  (token, created, asset_id, name, description, type)
VALUES
  (:token, :created, :asset_id, :name, :description, :type)
`, metadata); err != nil {
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

	return &metadata, nil
}

// LoadMetadataByAsset attempts to load the metadata of the given asset ID.
func LoadMetadataByAsset(
	ctx context.Context,
	asset string,
) (*Metadata, error) {
	metadata := Metadata{
		Asset: asset,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM metadata
WHERE asset_id = :asset_id
`, metadata); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&metadata); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &metadata, nil
}
