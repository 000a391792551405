package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	assetsSQL = `
CREATE TABLE IF NOT EXISTS assets(
  token VARCHAR(256) NOT NULL,   -- token
  created TIMESTAMP NOT NULL,    -- tokenization timestamp

  asset_id VARCHAR(64) NOT NULL,   -- external asset ID
  symbol VARCHAR(64) NOT NULL,     -- token symbol
  decimals SMALLINT,               -- token decimals
  tokenizer VARCHAR(256) NOT NULL, -- tokenizer address

  total_supply VARCHAR(64) NOT NULL,          -- total token supply
  tokens_in_circulation VARCHAR(64) NOT NULL, -- circulating supply
  locked_tokens VARCHAR(64) NOT NULL,         -- reserved

  valuation VARCHAR(64) NOT NULL,            -- asset valuation
  holders_count BIGINT NOT NULL,             -- holders count at creation
  min_voting_threshold VARCHAR(64) NOT NULL, -- voting threshold
  revenue_sharing BOOLEAN NOT NULL,          -- revenue sharing enabled
  detokenize_threshold BIGINT NOT NULL,      -- detokenization majority (%)

  PRIMARY KEY(token),
  CONSTRAINT assets_asset_id_u UNIQUE (asset_id)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"assets",
		assetsSQL,
	)
}
