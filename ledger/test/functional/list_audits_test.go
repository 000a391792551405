package functional

import (
	"net/url"
	"testing"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/stretchr/testify/assert"
)

// Supply-affecting operations append to the asset's audit log with strictly
// increasing positions.
func TestListAudits(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)
	receiver := l.CreateUser(t)

	status, _ := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	status, _ = l.Post(t, user,
		"/assets/building-5th-ave/mint", url.Values{
			"amount": {"500000"},
		})
	assert.Equal(t, 200, status)

	status, _ = l.Post(t, user,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {receiver.Address},
			"amount": {"300000"},
		})
	assert.Equal(t, 200, status)

	status, _ = l.Post(t, user,
		"/assets/building-5th-ave/burn", url.Values{
			"amount": {"200000"},
		})
	assert.Equal(t, 200, status)

	status, raw := l.Get(t, nil, "/assets/building-5th-ave/audits")
	assert.Equal(t, 200, status)

	var audits []ledger.AuditEntryResource
	if err := raw.Extract("audits", &audits); err != nil {
		t.Fatal(err)
	}

	assert.Len(t, audits, 4)
	actions := []string{}
	for i, a := range audits {
		assert.Equal(t, int64(i), a.Position)
		assert.Equal(t, "building-5th-ave", a.Asset)
		assert.Equal(t, user.Address, a.Actor)
		actions = append(actions, a.Action)
	}
	assert.Equal(t, []string{
		"ASSET_TOKENIZED",
		"TOKENS_MINTED",
		"TOKENS_TRANSFERRED",
		"TOKENS_BURNED",
	}, actions)

	// Failed operations leave no audit trace.
	status, _ = l.Post(t, receiver,
		"/assets/building-5th-ave/mint", url.Values{
			"amount": {"1"},
		})
	assert.Equal(t, 403, status)

	status, raw = l.Get(t, nil, "/assets/building-5th-ave/audits")
	assert.Equal(t, 200, status)
	if err := raw.Extract("audits", &audits); err != nil {
		t.Fatal(err)
	}
	assert.Len(t, audits, 4)
}
