package functional

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/test"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestPolicy(
	t *testing.T,
	l *test.Ledger,
	insurer *test.User,
	holder *test.User,
) ledger.PolicyResource {
	start := time.Now().Add(time.Minute).Unix()
	end := time.Now().Add(365 * 24 * time.Hour).Unix()

	status, raw := l.Post(t, insurer,
		"/assets/building-5th-ave/policies", url.Values{
			"holder":     {holder.Address},
			"type":       {"property"},
			"coverage":   {"500000.00"},
			"deductible": {"1000.00"},
			"premium":    {"250.50"},
			"start":      {fmt.Sprintf("%d", start)},
			"end":        {fmt.Sprintf("%d", end)},
			"auto_renew": {"true"},
		})
	assert.Equal(t, 201, status)

	var policy ledger.PolicyResource
	if err := raw.Extract("policy", &policy); err != nil {
		t.Fatal(err)
	}
	return policy
}

func TestCreatePolicy(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	insurer := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	policy := createTestPolicy(t, l, insurer, tokenizer)

	assert.Equal(t, "building-5th-ave", policy.Asset)
	assert.Equal(t, tokenizer.Address, policy.Holder)
	assert.Equal(t, insurer.Address, policy.Insurer)
	assert.Equal(t, "property", policy.Type)
	assert.Equal(t, "active", policy.Status)
	assert.True(t, policy.Coverage.Equal(decimal.RequireFromString("500000")))
	assert.True(t, policy.Premium.Equal(decimal.RequireFromString("250.5")))

	// The policy is listed under the asset.
	status, raw := l.Get(t, nil, "/assets/building-5th-ave/policies")
	assert.Equal(t, 200, status)

	var policies []ledger.PolicyResource
	if err := raw.Extract("policies", &policies); err != nil {
		t.Fatal(err)
	}
	assert.Len(t, policies, 1)
	assert.Equal(t, policy.ID, policies[0].ID)
}

func TestCreatePolicyDeductibleAboveCoverage(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	insurer := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	start := time.Now().Add(time.Minute).Unix()
	end := time.Now().Add(365 * 24 * time.Hour).Unix()

	status, raw := l.Post(t, insurer,
		"/assets/building-5th-ave/policies", url.Values{
			"holder":     {tokenizer.Address},
			"type":       {"property"},
			"coverage":   {"1000.00"},
			"deductible": {"2000.00"},
			"premium":    {"250.50"},
			"start":      {fmt.Sprintf("%d", start)},
			"end":        {fmt.Sprintf("%d", end)},
		})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
}

func TestPolicyLifecycle(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	insurer := l.CreateUser(t)
	other := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	policy := createTestPolicy(t, l, insurer, tokenizer)

	// Only the insurer can suspend.
	status, raw := l.Post(t, other,
		fmt.Sprintf("/policies/%s/suspend", policy.ID), nil)
	assert.Equal(t, 403, status)

	status, raw = l.Post(t, insurer,
		fmt.Sprintf("/policies/%s/suspend", policy.ID), nil)
	assert.Equal(t, 200, status)

	var p ledger.PolicyResource
	if err := raw.Extract("policy", &p); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "suspended", p.Status)

	// An active or suspended policy with a future end cannot be expired.
	status, raw = l.Post(t, nil,
		fmt.Sprintf("/policies/%s/expire", policy.ID), nil)
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "policy_not_expirable", e.ErrCode)

	// The holder can cancel a suspended policy.
	status, raw = l.Post(t, tokenizer,
		fmt.Sprintf("/policies/%s/cancel", policy.ID), nil)
	assert.Equal(t, 200, status)
	if err := raw.Extract("policy", &p); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "cancelled", p.Status)

	// A cancelled policy cannot be cancelled again.
	status, raw = l.Post(t, tokenizer,
		fmt.Sprintf("/policies/%s/cancel", policy.ID), nil)
	assert.Equal(t, 400, status)
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "policy_not_cancellable", e.ErrCode)
}

func TestPolicyRenewal(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	insurer := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	policy := createTestPolicy(t, l, insurer, tokenizer)

	end := time.Now().Add(2 * 365 * 24 * time.Hour).Unix()
	status, raw := l.Post(t, insurer,
		fmt.Sprintf("/policies/%s/renew", policy.ID), url.Values{
			"end":     {fmt.Sprintf("%d", end)},
			"premium": {"300.00"},
		})
	assert.Equal(t, 200, status)

	var p ledger.PolicyResource
	if err := raw.Extract("policy", &p); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "active", p.Status)
	assert.True(t, p.Premium.Equal(decimal.RequireFromString("300")))
}

func TestClaimLifecycle(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	insurer := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	policy := createTestPolicy(t, l, insurer, tokenizer)

	status, raw := l.Post(t, tokenizer,
		fmt.Sprintf("/policies/%s/claims", policy.ID), url.Values{
			"amount": {"12000.00"},
		})
	assert.Equal(t, 201, status)

	var claim ledger.ClaimResource
	if err := raw.Extract("claim", &claim); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, policy.ID, claim.Policy)
	assert.Equal(t, tokenizer.Address, claim.Claimant)
	assert.Equal(t, "submitted", claim.Status)
	assert.True(t, claim.Amount.Equal(decimal.RequireFromString("12000")))
	assert.True(t, claim.ApprovedAmount.Equal(decimal.Zero))

	// Only the insurer can approve.
	status, raw = l.Post(t, tokenizer,
		fmt.Sprintf("/claims/%s/approve", claim.ID), nil)
	assert.Equal(t, 403, status)

	// Paying before approval fails.
	status, raw = l.Post(t, insurer,
		fmt.Sprintf("/claims/%s/pay", claim.ID), nil)
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "claim_not_approved", e.ErrCode)

	status, raw = l.Post(t, insurer,
		fmt.Sprintf("/claims/%s/approve", claim.ID), nil)
	assert.Equal(t, 200, status)
	if err := raw.Extract("claim", &claim); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "approved", claim.Status)
	assert.True(t,
		claim.ApprovedAmount.Equal(decimal.RequireFromString("12000")))

	status, raw = l.Post(t, insurer,
		fmt.Sprintf("/claims/%s/pay", claim.ID), nil)
	assert.Equal(t, 200, status)
	if err := raw.Extract("claim", &claim); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "paid", claim.Status)

	// A paid claim cannot be approved again.
	status, raw = l.Post(t, insurer,
		fmt.Sprintf("/claims/%s/approve", claim.ID), nil)
	assert.Equal(t, 400, status)
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "claim_not_approvable", e.ErrCode)
}

func TestClaimRequiresActivePolicy(
	t *testing.T,
) {
	l := test.CreateLedger(t)
	tokenizer := l.CreateUser(t)
	insurer := l.CreateUser(t)

	status, _ := l.Post(t, tokenizer, "/assets", url.Values{
		"asset_id": {"building-5th-ave"},
		"symbol":   {"BLDG"},
		"decimals": {"2"},
		"supply":   {"1000"},
	})
	assert.Equal(t, 201, status)

	policy := createTestPolicy(t, l, insurer, tokenizer)

	status, _ = l.Post(t, tokenizer,
		fmt.Sprintf("/policies/%s/cancel", policy.ID), nil)
	assert.Equal(t, 200, status)

	status, raw := l.Post(t, tokenizer,
		fmt.Sprintf("/policies/%s/claims", policy.ID), url.Values{
			"amount": {"100.00"},
		})
	assert.Equal(t, 400, status)

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "policy_not_active", e.ErrCode)
}
