package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	goji "goji.io"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/app"
	"github.com/Mkalbani/ManageAssets/ledger/async"
	"github.com/Mkalbani/ManageAssets/ledger/lib/authentication"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/env"
	"github.com/Mkalbani/ManageAssets/lib/recoverer"
	"github.com/Mkalbani/ManageAssets/lib/requestlogger"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

// Ledger represents a test ledger.
type Ledger struct {
	Server *httptest.Server
	Env    *env.Env
	Ctx    context.Context
}

// User represents a user of a test ledger.
type User struct {
	Username string
	Password string
	Address  string
}

var userCounter = int(0)
var userMutex = &sync.Mutex{}

// CreateLedger creates a new test ledger with an in-memory DB and returns a
// test.Ledger object.
func CreateLedger(
	t *testing.T,
) *Ledger {
	ctx := context.Background()

	ledgerEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	ctx = env.With(ctx, &ledgerEnv)

	ledgerDB, err := db.NewSqlite3DBInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	err = db.CreateDBTables(ctx, "ledger", ledgerDB)
	if err != nil {
		t.Fatal(err)
	}
	ctx = db.WithDB(ctx, "ledger", ledgerDB)

	a, err := async.NewAsync(ctx)
	if err != nil {
		t.Fatal(err)
	}
	ctx = async.With(ctx, a)

	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDBMap(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(async.Middleware(a))
	mux.Use(authentication.Middleware)

	(&app.Controller{}).Bind(mux)

	l := Ledger{
		Server: httptest.NewServer(mux),
		Env:    &ledgerEnv,
		Ctx:    ctx,
	}

	u, err := url.Parse(l.Server.URL)
	if err != nil {
		t.Fatal(err)
	}
	ledgerEnv.Config[ledger.EnvCfgHost] = u.Host

	return &l
}

// CreateUser creates a user on the test ledger and returns the associated
// test.User object.
func (l *Ledger) CreateUser(
	t *testing.T,
) *User {
	userMutex.Lock()
	userCounter++
	user := User{
		Username: fmt.Sprintf("u%d", userCounter),
		Password: fmt.Sprintf("password-%d", userCounter),
	}
	userMutex.Unlock()

	user.Address = fmt.Sprintf("%s@%s",
		user.Username, l.Env.Config[ledger.EnvCfgHost])

	status, _ := l.Post(t, nil, "/users", url.Values{
		"username": {user.Username},
		"password": {user.Password},
	})
	if status != http.StatusCreated {
		t.Fatalf("Failed to create user: %s", user.Username)
	}

	return &user
}

// Post posts a form to the test ledger, authenticated as the provided user
// (pass nil to perform an unauthenticated request).
func (l *Ledger) Post(
	t *testing.T,
	user *User,
	path string,
	params url.Values,
) (int, svc.Resp) {
	req, err := http.NewRequest("POST", l.Server.URL+path,
		strings.NewReader(params.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req.SetBasicAuth(user.Username, user.Password)
	}

	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}

	return r.StatusCode, raw
}

// Get performs a GET request on the test ledger.
func (l *Ledger) Get(
	t *testing.T,
	user *User,
	path string,
) (int, svc.Resp) {
	req, err := http.NewRequest("GET", l.Server.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		req.SetBasicAuth(user.Username, user.Password)
	}

	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}

	return r.StatusCode, raw
}

// Delete performs a DELETE request on the test ledger.
func (l *Ledger) Delete(
	t *testing.T,
	user *User,
	path string,
) (int, svc.Resp) {
	req, err := http.NewRequest("DELETE", l.Server.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		req.SetBasicAuth(user.Username, user.Password)
	}

	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}

	return r.StatusCode, raw
}
