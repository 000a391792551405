package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestMintTokens(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	status, _ := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, user,
		"/assets/building-5th-ave/mint", url.Values{
			"amount": {"500000"},
		})
	assert.Equal(t, 200, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1500000", asset.TotalSupply.String())
	assert.Equal(t, "1500000", asset.Circulation.String())

	// Minted tokens are credited to the tokenizer.
	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/balances/%s", user.Address))
	assert.Equal(t, 200, status)

	var balance ledger.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1500000", balance.Balance.String())
}

func TestMintTokensUnauthorized(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)
	other := l.CreateUser(t)

	status, _ := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, other,
		"/assets/building-5th-ave/mint", url.Values{
			"amount": {"500000"},
		})
	assert.Equal(t, 403, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "unauthorized", e.ErrCode)

	// The supply is unchanged.
	status, raw = l.Get(t, nil, "/assets/building-5th-ave")
	assert.Equal(t, 200, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1000000", asset.TotalSupply.String())
}

func TestBurnTokens(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	status, _ := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	status, raw := l.Post(t, user,
		"/assets/building-5th-ave/burn", url.Values{
			"amount": {"400000"},
		})
	assert.Equal(t, 200, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "600000", asset.TotalSupply.String())
	assert.Equal(t, "600000", asset.Circulation.String())

	// Burning more than the balance fails and leaves the supply unchanged.
	status, raw = l.Post(t, user,
		"/assets/building-5th-ave/burn", url.Values{
			"amount": {"700000"},
		})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "insufficient_balance", e.ErrCode)

	status, raw = l.Get(t, nil, "/assets/building-5th-ave")
	assert.Equal(t, 200, status)
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "600000", asset.TotalSupply.String())
}

// Cached ownership stakes are recomputed only for the holdings touched by an
// operation. After a burn, other holders keep their previous cached stake
// while live ownership queries reflect the new supply.
func TestOwnershipStakeStalenessAfterBurn(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	x := l.CreateUser(t)
	y := l.CreateUser(t)

	status, _ := l.Post(t, x, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	status, _ = l.Post(t, x,
		"/assets/building-5th-ave/mint", url.Values{
			"amount": {"500000"},
		})
	assert.Equal(t, 200, status)

	status, _ = l.Post(t, x,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {y.Address},
			"amount": {"300000"},
		})
	assert.Equal(t, 200, status)

	// After the transfer: X holds 1,200,000 of 1,500,000 (80.00%), Y holds
	// 300,000 (20.00%).
	ctx := db.Begin(l.Ctx, "ledger")
	hx, err := model.LoadHoldingByAssetHolder(ctx,
		"building-5th-ave", x.Address)
	if err != nil {
		t.Fatal(err)
	}
	hy, err := model.LoadHoldingByAssetHolder(ctx,
		"building-5th-ave", y.Address)
	if err != nil {
		t.Fatal(err)
	}
	db.Commit(ctx)

	assert.Equal(t, int64(8000), hx.OwnershipBps)
	assert.Equal(t, int64(2000), hy.OwnershipBps)

	status, _ = l.Post(t, x,
		"/assets/building-5th-ave/burn", url.Values{
			"amount": {"200000"},
		})
	assert.Equal(t, 200, status)

	// Y's cached stake is not recomputed by the burn.
	ctx = db.Begin(l.Ctx, "ledger")
	hy, err = model.LoadHoldingByAssetHolder(ctx,
		"building-5th-ave", y.Address)
	if err != nil {
		t.Fatal(err)
	}
	db.Commit(ctx)

	assert.Equal(t, int64(2000), hy.OwnershipBps)

	// A live ownership query reflects the new supply of 1,300,000.
	status, raw := l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/ownership/%s", y.Address))
	assert.Equal(t, 200, status)

	var ownership ledger.OwnershipResource
	if err := raw.Extract("ownership", &ownership); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(2307), ownership.OwnershipBps)
}
