package schemas

import "github.com/Mkalbani/ManageAssets/lib/db"

const (
	eventsSQL = `
CREATE TABLE IF NOT EXISTS events(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  uuid VARCHAR(36) NOT NULL,     -- envelope ID
  asset_id VARCHAR(64) NOT NULL, -- external asset ID
  kind VARCHAR(32) NOT NULL,     -- kind (asset_tokenized, tokens_minted, ...)
  payload TEXT NOT NULL,         -- JSON tuple of primitive values

  PRIMARY KEY(token),
  CONSTRAINT events_uuid_u UNIQUE (uuid)
);
`
)

func init() {
	db.RegisterSchema(
		"ledger",
		"events",
		eventsSQL,
	)
}
