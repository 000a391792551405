package functional

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/async"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/stretchr/testify/assert"
)

// Domain events are propagated to configured observers by the async queue.
func TestEventPropagation(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	user := l.CreateUser(t)

	mutex := &sync.Mutex{}
	received := []ledger.EventResource{}
	observer := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var event ledger.EventResource
			if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
				t.Fatal(err)
			}
			mutex.Lock()
			received = append(received, event)
			mutex.Unlock()
			w.WriteHeader(http.StatusOK)
		}))
	defer observer.Close()

	l.Env.Config[ledger.EnvCfgObservers] = observer.URL

	status, _ := l.Post(t, user, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000000"},
	})
	assert.Equal(t, 201, status)

	async.TestRunOne(l.Ctx)

	mutex.Lock()
	assert.Len(t, received, 1)
	event := received[0]
	mutex.Unlock()

	assert.Equal(t, "building-5th-ave", event.Asset)
	assert.Equal(t, "asset_tokenized", event.Kind)
	assert.NotEmpty(t, event.ID)

	var payload map[string]interface{}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "building-5th-ave", payload["asset"])

	// A mint queues another propagation.
	status, _ = l.Post(t, user,
		"/assets/building-5th-ave/mint", url.Values{
			"amount": {"500000"},
		})
	assert.Equal(t, 200, status)

	async.TestRunOne(l.Ctx)

	mutex.Lock()
	assert.Len(t, received, 2)
	assert.Equal(t, "tokens_minted", received[1].Kind)
	mutex.Unlock()
}
