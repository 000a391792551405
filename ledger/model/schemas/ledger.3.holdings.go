package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	holdingsSQL = `
CREATE TABLE IF NOT EXISTS holdings(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,   -- acquisition timestamp

  asset_id VARCHAR(64) NOT NULL, -- external asset ID
  holder VARCHAR(256) NOT NULL,  -- holder address
  balance VARCHAR(64) NOT NULL,  -- token balance

  voting_power VARCHAR(64) NOT NULL,         -- kept equal to balance
  dividend_entitlement VARCHAR(64) NOT NULL, -- kept equal to balance
  unclaimed_dividends VARCHAR(64) NOT NULL,  -- not mutated by the ledger
  ownership_bps BIGINT NOT NULL,             -- cached ownership basis points
  purchase_price VARCHAR(64) NOT NULL,       -- average purchase price

  PRIMARY KEY(token),
  CONSTRAINT holdings_asset_holder_u UNIQUE (asset_id, holder)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"holdings",
		holdingsSQL,
	)
}
