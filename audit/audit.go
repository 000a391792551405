// Package audit records an append-only trail of significant ledger actions,
// one log per asset. Entries are written inside the transaction of the
// operation that triggers them and are never read back by the ledger itself;
// retrieval exists for external reviewers only. An asset with no recorded
// action has an empty log.
package audit

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/token"
)

// Action is the recorded kind of an audit entry.
type Action string

const (
	// AcAssetTokenized records the tokenization of an asset.
	AcAssetTokenized Action = "ASSET_TOKENIZED"
	// AcTokensMinted records a supply increase.
	AcTokensMinted Action = "TOKENS_MINTED"
	// AcTokensBurned records a supply decrease.
	AcTokensBurned Action = "TOKENS_BURNED"
	// AcTokensTransferred records a transfer between holders.
	AcTokensTransferred Action = "TOKENS_TRANSFERRED"
	// AcPolicyCreated records the creation of an insurance policy.
	AcPolicyCreated Action = "INSURANCE_POLICY_CREATED"
	// AcPolicyCancelled records the cancellation of an insurance policy.
	AcPolicyCancelled Action = "INSURANCE_POLICY_CANCELLED"
	// AcPolicyRenewed records the renewal of an insurance policy.
	AcPolicyRenewed Action = "INSURANCE_POLICY_RENEWED"
)

// Value implements driver.Valuer.
func (s Action) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *Action) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = Action(src)
	case string:
		*s = Action(src)
	default:
		return errors.Newf(
			"Incompatible action for Action with value: %q", src)
	}

	return nil
}

// Entry represents one line of the audit log of an asset.
type Entry struct {
	Token   string
	Created time.Time

	Asset    string `db:"asset_id"`
	Action   Action
	Actor    string // Acting user address.
	Details  string
	Position int64 // Append order within the asset log.
}

// Append records a new entry at the end of the audit log of an asset, within
// the transaction of the calling operation.
func Append(
	ctx context.Context,
	asset string,
	action Action,
	actor string,
	details string,
) error {
	ext := db.Ext(ctx, "ledger")

	position := int64(0)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT COUNT(*) AS position
FROM audits
WHERE asset_id = :asset_id
`, Entry{Asset: asset}); err != nil {
		return errors.Trace(err)
	} else if !rows.Next() {
		defer rows.Close()
		return errors.Newf("Audit log count failed for asset: %s", asset)
	} else if err := rows.Scan(&position); err != nil {
		defer rows.Close()
		return errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return errors.Trace(err)
	}

	entry := Entry{
		Token:   token.New("audit"),
		Created: time.Now().UTC(),

		Asset:    asset,
		Action:   action,
		Actor:    actor,
		Details:  details,
		Position: position,
	}

	if _, err := sqlx.NamedExec(ext, `
INSERT INTO audits
  (token, created, asset_id, action, actor, details, position)
VALUES
  (:token, :created, :asset_id, :action, :actor, :details, :position)
`, entry); err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadEntriesByAsset loads the audit log of an asset in append order. The
// log of an asset with no recorded action is empty, not an error.
func LoadEntriesByAsset(
	ctx context.Context,
	asset string,
) ([]*Entry, error) {
	query := Entry{
		Asset: asset,
	}

	ext := db.Ext(ctx, "ledger")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM audits
WHERE asset_id = :asset_id
ORDER BY position
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}

	entries := []*Entry{}

	defer rows.Close()
	for rows.Next() {
		e := Entry{}
		err := rows.StructScan(&e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		entries = append(entries, &e)
	}

	return entries, nil
}
