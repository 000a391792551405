package endpoint

import (
	"context"
	"net/http"
	"time"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtExpirePolicy marks an insurance policy as expired.
	EndPtExpirePolicy EndPtName = "ExpirePolicy"
)

func init() {
	registrar[EndPtExpirePolicy] = NewExpirePolicy
}

// ExpirePolicy marks a policy whose period has elapsed as expired. The
// operation is permissionless: expiration is a statement of fact about the
// policy period, not a decision.
type ExpirePolicy struct {
	Policy string
}

// NewExpirePolicy constructs and initialiezes the endpoint.
func NewExpirePolicy(
	r *http.Request,
) (Endpoint, error) {
	return &ExpirePolicy{}, nil
}

// Validate validates the input parameters.
func (e *ExpirePolicy) Validate(
	r *http.Request,
) error {
	e.Policy = pat.Param(r, "policy")

	return nil
}

// Execute executes the endpoint.
func (e *ExpirePolicy) Execute(
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
			"The policy you are trying to expire does not exist: %s.",
			e.Policy,
		))
	}

	if policy.Status != model.PlStActive &&
		policy.Status != model.PlStSuspended {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "policy_not_expirable",
			"The policy you are trying to expire is neither active nor "+
				"suspended: %s.",
			policy.Status,
		))
	}

	if !policy.End.Before(time.Now()) {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "policy_not_expirable",
			"The policy you are trying to expire has not reached the end of "+
				"its period yet: %s.",
			policy.End.Format(time.RFC3339),
		))
	}

	policy.Status = model.PlStExpired

	err = policy.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"policy": format.JSONPtr(ledger.NewPolicyResource(ctx, policy)),
	}, nil
}
