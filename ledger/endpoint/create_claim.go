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
	"github.com/shopspring/decimal"
)

const (
	// EndPtCreateClaim files an insurance claim against a policy.
	EndPtCreateClaim EndPtName = "CreateClaim"
)

func init() {
	registrar[EndPtCreateClaim] = NewCreateClaim
}

// CreateClaim controls the filing of insurance claims. The authenticated
// user becomes the claimant; claims can only be filed against active
// policies.
type CreateClaim struct {
	Claimant string
	Policy   string
	Amount   decimal.Decimal
}

// NewCreateClaim constructs and initialiezes the endpoint.
func NewCreateClaim(
	r *http.Request,
) (Endpoint, error) {
	return &CreateClaim{}, nil
}

// Validate validates the input parameters.
func (e *CreateClaim) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Claimant = authentication.Get(ctx).Address(ctx)
	e.Policy = pat.Param(r, "policy")

	// Validate amount.
	amount, err := ValidateClaimAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Amount = *amount

	return nil
}

// Execute executes the endpoint.
func (e *CreateClaim) Execute(
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
			"The policy you are trying to claim against does not exist: %s.",
			e.Policy,
		))
	}

	if policy.Status != model.PlStActive {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "policy_not_active",
			"The policy you are trying to claim against is not active: %s.",
			policy.Status,
		))
	}

	claim, err := model.CreateClaim(ctx,
		policy.Token,
		e.Claimant,
		e.Amount,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"claim": format.JSONPtr(ledger.NewClaimResource(ctx, claim)),
	}, nil
}
