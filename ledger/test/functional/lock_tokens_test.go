package functional

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestLockTokensBlocksTransfers(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	holder := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	status, _ = l.Post(t, tokenizer,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {holder.Address},
			"amount": {"500"},
		})
	assert.Equal(t, 200, status)

	until := time.Now().Add(time.Hour).Unix()
	status, raw := l.Post(t, tokenizer,
		"/assets/building-5th-ave/locks", url.Values{
			"holder": {holder.Address},
			"until":  {fmt.Sprintf("%d", until)},
		})
	assert.Equal(t, 200, status)

	var lock ledger.LockResource
	if err := raw.Extract("lock", &lock); err != nil {
		t.Fatal(err)
	}
	assert.True(t, lock.Locked)

	// The locked holder cannot transfer.
	status, raw = l.Post(t, holder,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {tokenizer.Address},
			"amount": {"100"},
		})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "tokens_locked", e.ErrCode)

	// Overwriting the lock with a past date unblocks the holder.
	past := time.Now().Add(-time.Hour).Unix()
	status, _ = l.Post(t, tokenizer,
		"/assets/building-5th-ave/locks", url.Values{
			"holder": {holder.Address},
			"until":  {fmt.Sprintf("%d", past)},
		})
	assert.Equal(t, 200, status)

	status, _ = l.Post(t, holder,
		"/assets/building-5th-ave/transfers", url.Values{
			"to":     {tokenizer.Address},
			"amount": {"100"},
		})
	assert.Equal(t, 200, status)
}

func TestLockTokensTokenizerOnly(
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

	until := time.Now().Add(time.Hour).Unix()
	status, raw := l.Post(t, other,
		"/assets/building-5th-ave/locks", url.Values{
			"holder": {tokenizer.Address},
			"until":  {fmt.Sprintf("%d", until)},
		})
	assert.Equal(t, 403, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "unauthorized", e.ErrCode)

	// No lock was created.
	status, raw = l.Get(t, nil,
		fmt.Sprintf("/assets/building-5th-ave/locks/%s", tokenizer.Address))
	assert.Equal(t, 200, status)

	var lock ledger.LockResource
	if err := raw.Extract("lock", &lock); err != nil {
		t.Fatal(err)
	}
	assert.False(t, lock.Locked)
	assert.Nil(t, lock.UnlockAt)
}

func TestUnlockTokensIdempotent(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	holder := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	until := time.Now().Add(time.Hour).Unix()
	status, _ = l.Post(t, tokenizer,
		"/assets/building-5th-ave/locks", url.Values{
			"holder": {holder.Address},
			"until":  {fmt.Sprintf("%d", until)},
		})
	assert.Equal(t, 200, status)

	// Unlocking twice succeeds both times.
	for i := 0; i < 2; i++ {
		status, raw := l.Delete(t, tokenizer,
			fmt.Sprintf("/assets/building-5th-ave/locks/%s", holder.Address))
		assert.Equal(t, 200, status)

		var lock ledger.LockResource
		if err := raw.Extract("lock", &lock); err != nil {
			t.Fatal(err)
		}
		assert.False(t, lock.Locked)
	}
}
