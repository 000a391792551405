// OWNER: mkalbani

package model

import (
	"context"
	"math/big"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/token"
)

// AssetDetokenizeThreshold is the majority percentage of token holders
// required to detokenize an asset, fixed at tokenization.
const AssetDetokenizeThreshold int64 = 50

// AssetIDRegexp is used to validate external asset IDs at tokenization.
var AssetIDRegexp = regexp.MustCompile("^[a-zA-Z0-9\\-]{1,64}$")

// Asset represents a tokenized asset. Assets are created once per external
// asset ID by the tokenize operation and never deleted. The supply fields are
// mutated by mint and burn, the valuation by valuation updates; everything
// else is immutable after creation.
type Asset struct {
	Token   string
	Created time.Time

	ID        string `db:"asset_id"` // External asset ID.
	Symbol    string
	Decimals  int8
	Tokenizer string // Tokenizer user address.

	TotalSupply  Amount `db:"total_supply"`
	Circulation  Amount `db:"tokens_in_circulation"`
	LockedTokens Amount `db:"locked_tokens"` // Reserved, kept at 0.

	Valuation          Amount
	HoldersCount       int64  `db:"holders_count"` // Set at creation only.
	MinVotingThreshold Amount `db:"min_voting_threshold"`
	RevenueSharing     bool   `db:"revenue_sharing"`
	// DetokenizeThreshold is the majority percentage required to detokenize.
	DetokenizeThreshold int64 `db:"detokenize_threshold"`
}

// CreateAsset creates and stores a new Asset object. The initial valuation
// and circulation both equal the total supply and the tokenizer is counted as
// the only holder.
func CreateAsset(
	ctx context.Context,
	id string,
	symbol string,
	decimals int8,
	tokenizer string,
	supply Amount,
	minVotingThreshold Amount,
) (*Asset, error) {
	asset := Asset{
		Token:   token.New("asset"),
		Created: time.Now().UTC(),

		ID:        id,
		Symbol:    symbol,
		Decimals:  decimals,
		Tokenizer: tokenizer,

		HoldersCount:        1,
		RevenueSharing:      false,
		DetokenizeThreshold: AssetDetokenizeThreshold,
	}

	(*big.Int)(&asset.TotalSupply).Set((*big.Int)(&supply))
	(*big.Int)(&asset.Circulation).Set((*big.Int)(&supply))
	(*big.Int)(&asset.Valuation).Set((*big.Int)(&supply))
	(*big.Int)(&asset.MinVotingThreshold).Set((*big.Int)(&minVotingThreshold))

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO assets
  (token, created, asset_id, symbol, decimals, tokenizer, total_supply,
   tokens_in_circulation, locked_tokens, valuation, holders_count,
   min_voting_threshold, revenue_sharing, detokenize_threshold)
VALUES
  (:token, :created, :asset_id, :symbol, :decimals, :tokenizer, :total_supply,
   :tokens_in_circulation, :locked_tokens, :valuation, :holders_count,
   :min_voting_threshold, :revenue_sharing, :detokenize_threshold)
`, asset); err != nil {
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

	return &asset, nil
}

// Save updates the object database representation with the in-memory values.
func (a *Asset) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
UPDATE assets
SET total_supply = :total_supply,
  tokens_in_circulation = :tokens_in_circulation,
  valuation = :valuation
WHERE token = :token
`, a)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadAssetByID attempts to load an asset with the given external asset ID.
func LoadAssetByID(
	ctx context.Context,
	id string,
) (*Asset, error) {
	asset := Asset{
		ID: id,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM assets
WHERE asset_id = :asset_id
`, asset); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&asset); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &asset, nil
}
