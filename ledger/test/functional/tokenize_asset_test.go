package functional

import (
	"fmt"
	"math/big"
	"net/url"
	"testing"
	"time"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestTokenizeAssetSimple(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	status, raw := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "building-5th-ave", asset.ID)
	assert.WithinDuration(t,
		time.Now(), time.Unix(0, asset.Created*1000*1000), time.Second)
	assert.Equal(t, "BLDG", asset.Symbol)
	assert.Equal(t, int8(2), asset.Decimals)
	assert.Equal(t,
		fmt.Sprintf("%s@%s", user.Username, l.Env.Config[ledger.EnvCfgHost]),
		asset.Tokenizer)
	assert.Equal(t, "1000000", asset.TotalSupply.String())
	assert.Equal(t, "1000000", asset.Circulation.String())
	assert.Equal(t, int64(1), asset.HoldersCount)

	// The initial supply is credited to the tokenizer.
	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/balances/%s", user.Address))
	assert.Equal(t, 200, status)

	var balance ledger.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1000000", balance.Balance.String())

	// The tokenizer owns 100% of the asset.
	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/ownership/%s", user.Address))
	assert.Equal(t, 200, status)

	var ownership ledger.OwnershipResource
	if err := raw.Extract("ownership", &ownership); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(10000), ownership.OwnershipBps)
}

func TestTokenizeAssetOptionalParamsDefault(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	// min_voting_threshold, asset_type, name and description are optional.
	status, raw := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "0", asset.MinVotingThreshold.String())

	status, raw = l.Get(t, nil, "/assets/building-5th-ave/metadata")
	assert.Equal(t, 200, status)

	var metadata ledger.MetadataResource
	if err := raw.Extract("metadata", &metadata); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "physical", metadata.Type)
	assert.Equal(t, "", metadata.Name)

	// Explicit values are honored.
	status, raw = l.Post(t, user, "/assets", url.Values{
		"asset_id":             {"warehouse-9"},
		"symbol":               {"WRH"},
		"decimals":             {"0"},
		"supply":               {"500"},
		"min_voting_threshold": {"100"},
		"asset_type":           {"financial"},
		"name":                 {"Warehouse 9"},
	})
	assert.Equal(t, 201, status)

	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "100", asset.MinVotingThreshold.String())

	status, raw = l.Get(t, nil, "/assets/warehouse-9/metadata")
	assert.Equal(t, 200, status)
	if err := raw.Extract("metadata", &metadata); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "financial", metadata.Type)
	assert.Equal(t, "Warehouse 9", metadata.Name)
}

func TestTokenizeAssetUniqueness(
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

	// Tokenizing the same asset id again fails, even for another user.
	status, raw := l.Post(t, other, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"OTHR"},
		"decimals": {"0"},
		"supply":   {"42"},
	})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "asset_already_tokenized", e.ErrCode)

	// The original asset is unchanged.
	status, raw = l.Get(t, nil, "/assets/building-5th-ave")
	assert.Equal(t, 200, status)

	var asset ledger.AssetResource
	if err := raw.Extract("asset", &asset); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "BLDG", asset.Symbol)
	assert.Equal(t, "1000000", asset.TotalSupply.String())
}

func TestTokenizeAssetInvalidSupply(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	status, raw := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"-10"},
	})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "invalid_token_supply", e.ErrCode)

	// A supply above the maximum token amount is rejected as well.
	above := new(big.Int).Add(
		new(big.Int).Exp(big.NewInt(2), big.NewInt(128), nil), big.NewInt(1))
	status, raw = l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {above.String()},
	})
	assert.Equal(t, 400, status)

	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "invalid_token_supply", e.ErrCode)
}

func TestTokenizeAssetRequiresAuthentication(
	t *testing.T,
) {
	l := test.CreateLedger(t)

	status, raw := l.Post(t, nil, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "username_invalid", e.ErrCode)
}
