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

func TestTransferTokens(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	sender := l.CreateUser(t)
	receiver := l.CreateUser(t)

	status, _ := l.Post(t, sender, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, sender,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {receiver.Address},
			"amount": {"250000"},
		})
	assert.Equal(t, 200, status)

	var holding ledger.HoldingResource
	if err := raw.Extract("holding", &holding); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "750000", holding.Balance.String())
	assert.Equal(t, int64(7500), holding.OwnershipBps)

	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/balances/%s", receiver.Address))
	assert.Equal(t, 200, status)

	var balance ledger.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "250000", balance.Balance.String())

	// Supply is conserved by transfers.
	status, raw = l.Get(t, nil, "/assets/building-5th-ave")
	assert.Equal(t, 200, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1000000", asset.TotalSupply.String())
}

func TestTransferTokensInsufficientBalance(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	sender := l.CreateUser(t)
	receiver := l.CreateUser(t)

	status, _ := l.Post(t, sender, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, sender,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {receiver.Address},
			"amount": {"1001"},
		})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "insufficient_balance", e.ErrCode)

	// Balances are unchanged.
	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/balances/%s", sender.Address))
	assert.Equal(t, 200, status)

	var balance ledger.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1000", balance.Balance.String())

	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/balances/%s", receiver.Address))
	assert.Equal(t, 200, status)
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "0", balance.Balance.String())
}

func TestTransferTokensSelfTransfer(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	sender := l.CreateUser(t)

	status, _ := l.Post(t, sender, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, sender,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {sender.Address},
			"amount": {"500"},
		})
	assert.Equal(t, 200, status)

	var holding ledger.HoldingResource
	if err := raw.Extract("holding", &holding); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1000", holding.Balance.String())
	assert.Equal(t, int64(10000), holding.OwnershipBps)
}

func TestTransferTokensHolderRegistry(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	sender := l.CreateUser(t)
	receiver := l.CreateUser(t)

	status, _ := l.Post(t, sender, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	// Two transfers to the same holder register it only once, in order of
	// first registration.
	for i := 0; i < 2; i++ {
		status, _ = l.Post(t, sender,
			"/assets/building-5th-ave/transfers", url.Values{
				"to":     {receiver.Address},
				"amount": {"100"},
			})
		assert.Equal(t, 200, status)
	}

	status, raw := l.Get(t, nil, "/assets/building-5th-ave/holders")
	assert.Equal(t, 200, status)

	var holders []string
	if err := raw.Extract("holders", &holders); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []string{sender.Address, receiver.Address}, holders)
}

func TestTransferTokensUnknownHolderBalance(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	status, _ := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	// Unknown holders have a balance of 0.
	status, raw := l.Get(t, nil,
		"/assets/building-5th-ave/balances/stranger@nowhere.net")
	assert.Equal(t, 200, status)

	var balance ledger.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "0", balance.Balance.String())

	// Ownership queries require an existing holding.
	status, raw = l.Get(t, nil,
		"/assets/building-5th-ave/ownership/stranger@nowhere.net")
	assert.Equal(t, 404, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "holder_not_found", e.ErrCode)
}
