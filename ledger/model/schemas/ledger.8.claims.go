package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	claimsSQL = `
CREATE TABLE IF NOT EXISTS claims(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  policy VARCHAR(256) NOT NULL,   -- policy token
  claimant VARCHAR(256) NOT NULL, -- claimant address

  status VARCHAR(32) NOT NULL, -- status (submitted, under_review, ...)
  amount VARCHAR(64) NOT NULL, -- claimed amount

  approved_amount VARCHAR(64) NOT NULL, -- amount granted at approval

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"claims",
		claimsSQL,
	)
}
