package functional

import (
	"net/url"
	"testing"
	"time"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(
	t *testing.T,
) {
	l := test.CreateLedger(t)

	status, raw := l.Post(t, nil, "/users", url.Values{
		"username": {"von.neumann"},
		"password": {"entscheidung"},
	})
	assert.Equal(t, 201, status)

	var user ledger.UserResource
	if err := raw.Extract("user", &user); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "von.neumann", user.Username)
	assert.WithinDuration(t,
		time.Now(), time.Unix(0, user.Created*1000*1000), time.Second)

	// Usernames are unique.
	status, raw = l.Post(t, nil, "/users", url.Values{
		"username": {"von.neumann"},
		"password": {"different"},
	})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "username_taken", e.ErrCode)

	// The new user can authenticate.
	u := &test.User{Username: "von.neumann", Password: "entscheidung"}
	status, _ = l.Post(t, u, "/assets", url.Values{
		"asset_id": {"turing-machine"},
		"symbol":   {"TURM"},
		"decimals": {"0"},
		"supply":   {"1"},
	})
	assert.Equal(t, 201, status)
}
