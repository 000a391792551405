package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/audit"
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
	// EndPtCancelPolicy cancels an insurance policy.
	EndPtCancelPolicy EndPtName = "CancelPolicy"
)

func init() {
	registrar[EndPtCancelPolicy] = NewCancelPolicy
}

// CancelPolicy controls the cancellation of insurance policies. The covered
// holder or the insurer can cancel an active or suspended policy;
// cancellation is final.
type CancelPolicy struct {
	Caller string
	Policy string
}

// NewCancelPolicy constructs and initialiezes the endpoint.
func NewCancelPolicy(
	r *http.Request,
) (Endpoint, error) {
	return &CancelPolicy{}, nil
}

// Validate validates the input parameters.
func (e *CancelPolicy) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)
	e.Policy = pat.Param(r, "policy")

	return nil
}

// Execute executes the endpoint.
func (e *CancelPolicy) Execute(
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
			"The policy you are trying to cancel does not exist: %s.",
			e.Policy,
		))
	}

	if e.Caller != policy.Holder && e.Caller != policy.Insurer {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the covered holder or the insurer of the policy can "+
				"cancel it: %s, %s.",
			policy.Holder, policy.Insurer,
		))
	}

	if policy.Status != model.PlStActive &&
		policy.Status != model.PlStSuspended {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "policy_not_cancellable",
			"The policy you are trying to cancel is neither active nor "+
				"suspended: %s.",
			policy.Status,
		))
	}

	policy.Status = model.PlStCancelled

	err = policy.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = audit.Append(ctx,
		policy.Asset,
		audit.AcPolicyCancelled,
		e.Caller,
		"Insurance policy cancelled",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"policy": format.JSONPtr(ledger.NewPolicyResource(ctx, policy)),
	}, nil
}
