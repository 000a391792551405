package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	holdersSQL = `
CREATE TABLE IF NOT EXISTS holders(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  asset_id VARCHAR(64) NOT NULL, -- external asset ID
  address VARCHAR(256) NOT NULL, -- holder address
  position BIGINT NOT NULL,      -- append order

  PRIMARY KEY(token),
  CONSTRAINT holders_asset_address_u UNIQUE (asset_id, address)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"holders",
		holdersSQL,
	)
}
