package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	policiesSQL = `
CREATE TABLE IF NOT EXISTS policies(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  asset_id VARCHAR(64) NOT NULL,  -- external asset ID
  holder VARCHAR(256) NOT NULL,   -- covered holder address
  insurer VARCHAR(256) NOT NULL,  -- underwriter address

  type VARCHAR(32) NOT NULL,   -- type (liability, property, ...)
  status VARCHAR(32) NOT NULL, -- status (active, expired, cancelled, suspended)

  coverage VARCHAR(64) NOT NULL,   -- coverage amount
  deductible VARCHAR(64) NOT NULL, -- deductible amount
  premium VARCHAR(64) NOT NULL,    -- premium amount

  period_start TIMESTAMP NOT NULL, -- coverage period start
  period_end TIMESTAMP NOT NULL,   -- coverage period end
  auto_renew BOOLEAN NOT NULL,     -- renew automatically at period end
  last_payment TIMESTAMP NOT NULL, -- last premium payment

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"policies",
		policiesSQL,
	)
}
