// OWNER: mkalbani

package model

import (
	"context"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/token"
	"github.com/shopspring/decimal"
)

// Holding represents the ownership record of one holder for one asset.
// Holdings are created lazily on first transfer-in (or at tokenization for
// the tokenizer) and never deleted; a zero balance holding persists. The
// voting power and dividend entitlement are kept equal to the balance. The
// cached ownership basis points are only recomputed for the holdings touched
// by an operation; the live value is served by the ownership queries.
type Holding struct {
	Token   string
	Created time.Time // Acquisition timestamp.

	Asset   string `db:"asset_id"`
	Holder  string // Holder user address.
	Balance Amount

	VotingPower         Amount `db:"voting_power"`
	DividendEntitlement Amount `db:"dividend_entitlement"`
	UnclaimedDividends  Amount `db:"unclaimed_dividends"` // Not mutated here.
	OwnershipBps        int64  `db:"ownership_bps"`

	// PurchasePrice is the average purchase price per token.
	PurchasePrice decimal.Decimal `db:"purchase_price"`
}

// ComputeOwnershipBps computes the ownership of a balance over a supply in
// basis points, truncated. Returns 0 if the supply is not strictly positive.
func ComputeOwnershipBps(
	balance *Amount,
	supply *Amount,
) int64 {
	if (*big.Int)(supply).Sign() <= 0 {
		return 0
	}
	bps := new(big.Int).Mul((*big.Int)(balance), big.NewInt(10000))
	bps.Div(bps, (*big.Int)(supply))
	return bps.Int64()
}

// CreateHolding creates and stores a new Holding object. Only one holding can
// exist for an asset, holder pair. Existing holdings should be retrieved and
// updated instead.
func CreateHolding(
	ctx context.Context,
	asset string,
	holder string,
	balance Amount,
	ownershipBps int64,
) (*Holding, error) {
	holding := Holding{
		Token:   token.New("holding"),
		Created: time.Now().UTC(),

		Asset:  asset,
		Holder: holder,

		OwnershipBps:  ownershipBps,
		PurchasePrice: decimal.NewFromInt(1),
	}

	(*big.Int)(&holding.Balance).Set((*big.Int)(&balance))
	(*big.Int)(&holding.VotingPower).Set((*big.Int)(&balance))
	(*big.Int)(&holding.DividendEntitlement).Set((*big.Int)(&balance))

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO holdings
  (token, created, asset_id, holder, balance, voting_power,
   dividend_entitlement, unclaimed_dividends, ownership_bps, purchase_price)
VALUES
  (:token, :created, :asset_id, :holder, :balance, :voting_power,
   :dividend_entitlement, :unclaimed_dividends, :ownership_bps,
   :purchase_price)
`, holding); err != nil {
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

	return &holding, nil
}

// Save updates the object database representation with the in-memory values.
func (h *Holding) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
UPDATE holdings
SET balance = :balance, voting_power = :voting_power,
  dividend_entitlement = :dividend_entitlement,
  ownership_bps = :ownership_bps
WHERE token = :token
`, h)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadHoldingByAssetHolder attempts to load a holding for the given asset ID
// and holder address.
func LoadHoldingByAssetHolder(
	ctx context.Context,
	asset string,
	holder string,
) (*Holding, error) {
	holding := Holding{
		Asset:  asset,
		Holder: holder,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM holdings
WHERE asset_id = :asset_id
  AND holder = :holder
`, holding); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&holding); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &holding, nil
}
