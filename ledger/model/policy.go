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
	"github.com/shopspring/decimal"
)

// Policy represents an insurance policy covering a tokenized asset for one
// of its holders, underwritten by an insurer.
type Policy struct {
	Token   string
	Created time.Time

	Asset   string `db:"asset_id"`
	Holder  string // Covered holder address.
	Insurer string // Underwriter address.

	Type   PlType
	Status PlStatus

	Coverage   decimal.Decimal
	Deductible decimal.Decimal
	Premium    decimal.Decimal

	Start       time.Time `db:"period_start"`
	End         time.Time `db:"period_end"`
	AutoRenew   bool      `db:"auto_renew"`
	LastPayment time.Time `db:"last_payment"`
}

// CreatePolicy creates and stores a new Policy object in active status, with
// the premium considered paid at creation.
func CreatePolicy(
	ctx context.Context,
	asset string,
	holder string,
	insurer string,
	plType PlType,
	coverage decimal.Decimal,
	deductible decimal.Decimal,
	premium decimal.Decimal,
	start time.Time,
	end time.Time,
	autoRenew bool,
) (*Policy, error) {
	policy := Policy{
		Token:   token.New("policy"),
		Created: time.Now().UTC(),

		Asset:   asset,
		Holder:  holder,
		Insurer: insurer,

		Type:   plType,
		Status: PlStActive,

		Coverage:   coverage,
		Deductible: deductible,
		Premium:    premium,

		Start:       start.UTC(),
		End:         end.UTC(),
		AutoRenew:   autoRenew,
		LastPayment: time.Now().UTC(),
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO policies
  (token, created, asset_id, holder, insurer, type, status, coverage,
   deductible, premium, period_start, period_end, auto_renew, last_payment)
VALUES
  (:token, :created, :asset_id, :holder, :insurer, :type, :status, :coverage,
   :deductible, :premium, :period_start, :period_end, :auto_renew,
   :last_payment)
`, policy); err != nil {
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

	return &policy, nil
}

// Save updates the object database representation with the in-memory values.
func (p *Policy) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
UPDATE policies
SET status = :status, premium = :premium, period_end = :period_end,
  last_payment = :last_payment
WHERE token = :token
`, p)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadPolicyByToken attempts to load a policy with the given policy token.
func LoadPolicyByToken(
	ctx context.Context,
	tk string,
) (*Policy, error) {
	policy := Policy{
		Token: tk,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM policies
WHERE token = :token
`, policy); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&policy); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &policy, nil
}

// LoadPoliciesByAsset loads the policies covering an asset in creation
// order.
func LoadPoliciesByAsset(
	ctx context.Context,
	asset string,
) ([]*Policy, error) {
	query := Policy{
		Asset: asset,
	}

	ext := db.Ext(ctx, "ledger")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM policies
WHERE asset_id = :asset_id
ORDER BY created
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}

	policies := []*Policy{}

	defer rows.Close()
	for rows.Next() {
		p := Policy{}
		err := rows.StructScan(&p)
		if err != nil {
			return nil, errors.Trace(err)
		}
		policies = append(policies, &p)
	}

	return policies, nil
}
