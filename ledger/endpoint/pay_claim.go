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
	// EndPtPayClaim marks an insurance claim as paid.
	EndPtPayClaim EndPtName = "PayClaim"
)

func init() {
	registrar[EndPtPayClaim] = NewPayClaim
}

// PayClaim controls the payout of insurance claims. Only the insurer of the
// claimed policy can pay, and only an approved claim. The payout itself
// happens outside of the ledger.
type PayClaim struct {
	Caller string
	Claim  string
}

// NewPayClaim constructs and initialiezes the endpoint.
func NewPayClaim(
	r *http.Request,
) (Endpoint, error) {
	return &PayClaim{}, nil
}

// Validate validates the input parameters.
func (e *PayClaim) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)
	e.Claim = pat.Param(r, "claim")

	return nil
}

// Execute executes the endpoint.
func (e *PayClaim) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	claim, err := model.LoadClaimByToken(ctx, e.Claim)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if claim == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "claim_not_found",
			"The claim you are trying to pay does not exist: %s.",
			e.Claim,
		))
	}

	policy, err := model.LoadPolicyByToken(ctx, claim.Policy)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if policy == nil {
		return nil, nil, errors.Trace(errors.Newf(
			"Policy not found for claim: %s", claim.Token)) // 500
	}

	if e.Caller != policy.Insurer {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the insurer of the claimed policy can pay the claim: %s.",
			policy.Insurer,
		))
	}

	if claim.Status != model.ClStApproved {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "claim_not_approved",
			"The claim you are trying to pay is not approved: %s.",
			claim.Status,
		))
	}

	claim.Status = model.ClStPaid

	err = claim.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"claim": format.JSONPtr(ledger.NewClaimResource(ctx, claim)),
	}, nil
}
