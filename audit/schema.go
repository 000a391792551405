package audit

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	auditsSQL = `
CREATE TABLE IF NOT EXISTS audits(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  asset_id VARCHAR(64) NOT NULL, -- external asset ID
  action VARCHAR(64) NOT NULL,   -- action (ASSET_TOKENIZED, ...)
  actor VARCHAR(256) NOT NULL,   -- acting address
  details TEXT NOT NULL,         -- human readable details
  position BIGINT NOT NULL,      -- append order within the asset log

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"audits",
		auditsSQL,
	)
}
