package endpoint

import (
	"context"
	"net/http"
	"time"

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
	"github.com/shopspring/decimal"
)

const (
	// EndPtRenewPolicy renews an insurance policy.
	EndPtRenewPolicy EndPtName = "RenewPolicy"
)

func init() {
	registrar[EndPtRenewPolicy] = NewRenewPolicy
}

// RenewPolicy controls the renewal of insurance policies. Only the insurer
// can renew an active or expired policy, setting a new period end and
// premium; the renewal premium is considered paid at renewal.
type RenewPolicy struct {
	Caller  string
	Policy  string
	End     time.Time
	Premium decimal.Decimal
}

// NewRenewPolicy constructs and initialiezes the endpoint.
func NewRenewPolicy(
	r *http.Request,
) (Endpoint, error) {
	return &RenewPolicy{}, nil
}

// Validate validates the input parameters.
func (e *RenewPolicy) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)
	e.Policy = pat.Param(r, "policy")

	// Validate end.
	end, err := ValidateDate(ctx, r.PostFormValue("end"))
	if err != nil {
		return errors.Trace(err)
	}
	e.End = *end

	// Validate premium.
	premium, err := ValidatePremium(ctx, r.PostFormValue("premium"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Premium = *premium

	if !e.End.After(time.Now()) {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "period_invalid",
			"The renewed period end you provided is in the past: %s.",
			e.End.Format(time.RFC3339),
		))
	}

	return nil
}

// Execute executes the endpoint.
func (e *RenewPolicy) Execute(
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
			"The policy you are trying to renew does not exist: %s.",
			e.Policy,
		))
	}

	if e.Caller != policy.Insurer {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the insurer of the policy can renew it: %s.",
			policy.Insurer,
		))
	}

	if policy.Status != model.PlStActive &&
		policy.Status != model.PlStExpired {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "policy_not_renewable",
			"The policy you are trying to renew is neither active nor "+
				"expired: %s.",
			policy.Status,
		))
	}

	policy.Status = model.PlStActive
	policy.End = e.End.UTC()
	policy.Premium = e.Premium
	policy.LastPayment = time.Now().UTC()

	err = policy.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = audit.Append(ctx,
		policy.Asset,
		audit.AcPolicyRenewed,
		e.Caller,
		"Insurance policy renewed",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"policy": format.JSONPtr(ledger.NewPolicyResource(ctx, policy)),
	}, nil
}
