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
	// EndPtApproveClaim approves an insurance claim.
	EndPtApproveClaim EndPtName = "ApproveClaim"
)

func init() {
	registrar[EndPtApproveClaim] = NewApproveClaim
}

// ApproveClaim controls the approval of insurance claims. Only the insurer
// of the claimed policy can approve a submitted or under review claim; the
// approved amount is the claimed amount.
type ApproveClaim struct {
	Caller string
	Claim  string
}

// NewApproveClaim constructs and initialiezes the endpoint.
func NewApproveClaim(
	r *http.Request,
) (Endpoint, error) {
	return &ApproveClaim{}, nil
}

// Validate validates the input parameters.
func (e *ApproveClaim) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)
	e.Claim = pat.Param(r, "claim")

	return nil
}

// Execute executes the endpoint.
func (e *ApproveClaim) Execute(
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
			"The claim you are trying to approve does not exist: %s.",
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
			"Only the insurer of the claimed policy can approve the "+
				"claim: %s.",
			policy.Insurer,
		))
	}

	if claim.Status != model.ClStSubmitted &&
		claim.Status != model.ClStUnderReview {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "claim_not_approvable",
			"The claim you are trying to approve is neither submitted nor "+
				"under review: %s.",
			claim.Status,
		))
	}

	claim.Status = model.ClStApproved
	claim.ApprovedAmount = claim.Amount

	err = claim.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"claim": format.JSONPtr(ledger.NewClaimResource(ctx, claim)),
	}, nil
}
