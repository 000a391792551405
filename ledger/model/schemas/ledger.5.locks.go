package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	locksSQL = `
CREATE TABLE IF NOT EXISTS locks(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  asset_id VARCHAR(64) NOT NULL,  -- external asset ID
  holder VARCHAR(256) NOT NULL,   -- holder address
  unlock_at TIMESTAMP NOT NULL,   -- unlock timestamp

  PRIMARY KEY(token),
  CONSTRAINT locks_asset_holder_u UNIQUE (asset_id, holder)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"locks",
		locksSQL,
	)
}
