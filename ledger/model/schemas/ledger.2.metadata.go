package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	metadataSQL = `
CREATE TABLE IF NOT EXISTS metadata(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  asset_id VARCHAR(64) NOT NULL, -- external asset ID
  name VARCHAR(256) NOT NULL,    -- asset display name
  description TEXT NOT NULL,     -- asset description
  type VARCHAR(32) NOT NULL,     -- type (physical, digital, financial, custom)

  PRIMARY KEY(token),
  CONSTRAINT metadata_asset_id_u UNIQUE (asset_id)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"metadata",
		metadataSQL,
	)
}
