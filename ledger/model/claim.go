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

// Claim represents an insurance claim filed against a policy.
type Claim struct {
	Token   string
	Created time.Time

	Policy   string // Policy token.
	Claimant string // Claimant user address.

	Status ClStatus
	Amount decimal.Decimal

	// ApprovedAmount is set when the claim gets approved, 0 before that.
	ApprovedAmount decimal.Decimal `db:"approved_amount"`
}

// CreateClaim creates and stores a new Claim object in submitted status.
func CreateClaim(
	ctx context.Context,
	policy string,
	claimant string,
	amount decimal.Decimal,
) (*Claim, error) {
	claim := Claim{
		Token:   token.New("claim"),
		Created: time.Now().UTC(),

		Policy:   policy,
		Claimant: claimant,

		Status:         ClStSubmitted,
		Amount:         amount,
		ApprovedAmount: decimal.Zero,
	}

	ext := db.Ext(ctx, "ledger")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO claims
  (token, created, policy, claimant, status, amount, approved_amount)
VALUES
  (:token, :created, :policy, :claimant, :status, :amount, :approved_amount)
`, claim); err != nil {
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

	return &claim, nil
}

// Save updates the object database representation with the in-memory values.
func (c *Claim) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "ledger")
	_, err := sqlx.NamedExec(ext, `
UPDATE claims
SET status = :status, approved_amount = :approved_amount
WHERE token = :token
`, c)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadClaimByToken attempts to load a claim with the given claim token.
func LoadClaimByToken(
	ctx context.Context,
	tk string,
) (*Claim, error) {
	claim := Claim{
		Token: tk,
	}

	ext := db.Ext(ctx, "ledger")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM claims
WHERE token = :token
`, claim); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&claim); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &claim, nil
}
