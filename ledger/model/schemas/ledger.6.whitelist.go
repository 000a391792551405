package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	whitelistSQL = `
CREATE TABLE IF NOT EXISTS whitelist(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  asset_id VARCHAR(64) NOT NULL,  -- external asset ID
  address VARCHAR(256) NOT NULL,  -- whitelisted address

  PRIMARY KEY(token),
  CONSTRAINT whitelist_asset_address_u UNIQUE (asset_id, address)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"whitelist",
		whitelistSQL,
	)
}
