package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/lib/authentication"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtSuspendPolicy suspends an insurance policy.
	EndPtSuspendPolicy EndPtName = "SuspendPolicy"
)

func init() {
	registrar[EndPtSuspendPolicy] = NewSuspendPolicy
}

// SuspendPolicy controls the suspension of insurance policies. Only the
// insurer can suspend, and only an active policy. A suspended policy can be
// cancelled or reactivated by renewal.
type SuspendPolicy struct {
	Caller string
	Policy string
}

// NewSuspendPolicy constructs and initialiezes the endpoint.
func NewSuspendPolicy(
	r *http.Request,
) (Endpoint, error) {
	return &SuspendPolicy{}, nil
}

// Validate validates the input parameters.
func (e *SuspendPolicy) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)
	e.Policy = pat.Param(r, "policy")

	return nil
}

// Execute executes the endpoint.
func (e *SuspendPolicy) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	policy, err := model.LoadPolicyByToken(ctx, e.Policy)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if policy == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "policy_not_found",
			"The policy you are trying to suspend does not exist: %s.",
			e.Policy,
		))
	}

	if e.Caller != policy.Insurer {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the insurer of the policy can suspend it: %s.",
			policy.Insurer,
		))
	}

	if policy.Status != model.PlStActive {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "policy_not_active",
			"The policy you are trying to suspend is not active: %s.",
			policy.Status,
		))
	}

	policy.Status = model.PlStSuspended

	err = policy.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"policy": format.JSONPtr(ledger.NewPolicyResource(ctx, policy)),
	}, nil
}
