package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestWhitelist(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	investor := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, tokenizer,
		"/assets/building-5th-ave/whitelist", url.Values{
			"address": {investor.Address},
		})
	assert.Equal(t, 201, status)

	var entry ledger.WhitelistEntryResource
	if err := raw.Extract("whitelist_entry", &entry); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "building-5th-ave", entry.Asset)
	assert.Equal(t, investor.Address, entry.Address)

	// The entry is retrievable.
	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/whitelist/%s", investor.Address))
	assert.Equal(t, 200, status)

	var whitelisted bool
	if err := raw.Extract("whitelisted", &whitelisted); err != nil {
		t.Fatal(err)
	}
	assert.True(t, whitelisted)

	// Unknown addresses are not whitelisted.
	status, raw = l.Get(t, nil,
		"/assets/building-5th-ave/whitelist/stranger@nowhere.net")
	assert.Equal(t, 200, status)
	if err := raw.Extract("whitelisted", &whitelisted); err != nil {
		t.Fatal(err)
	}
	assert.False(t, whitelisted)

	// Adding the same address again is idempotent.
	status, _ = l.Post(t, tokenizer,
		"/assets/building-5th-ave/whitelist", url.Values{
			"address": {investor.Address},
		})
	assert.Equal(t, 201, status)

	// Listing returns a single entry.
	status, raw = l.Get(t, nil, "/assets/building-5th-ave/whitelist")
	assert.Equal(t, 200, status)

	var entries []ledger.WhitelistEntryResource
	if err := raw.Extract("whitelist", &entries); err != nil {
		t.Fatal(err)
	}
	assert.Len(t, entries, 1)

	// Removal is a no-op when the entry is absent and removes it otherwise.
	for i := 0; i < 2; i++ {
		status, raw = l.Delete(t, tokenizer,
			fmt.Sprintf("/assets/building-5th-ave/whitelist/%s",
				investor.Address))
		assert.Equal(t, 200, status)
		if err := raw.Extract("whitelisted", &whitelisted); err != nil {
			t.Fatal(err)
		}
		assert.False(t, whitelisted)
	}

	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/whitelist/%s", investor.Address))
	assert.Equal(t, 200, status)
	if err := raw.Extract("whitelisted", &whitelisted); err != nil {
		t.Fatal(err)
	}
	assert.False(t, whitelisted)
}

func TestWhitelistTokenizerOnly(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	other := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, other,
		"/assets/building-5th-ave/whitelist", url.Values{
			"address": {other.Address},
		})
	assert.Equal(t, 403, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "unauthorized", e.ErrCode)
}
