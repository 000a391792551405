package endpoint

import (
	"context"
	"net/http"

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
	// EndPtRetrievePolicy retrieves an insurance policy.
	EndPtRetrievePolicy EndPtName = "RetrievePolicy"
)

func init() {
	registrar[EndPtRetrievePolicy] = NewRetrievePolicy
}

// RetrievePolicy retrieves an insurance policy by token. It is not
// authenticated.
type RetrievePolicy struct {
	Policy string
}

// NewRetrievePolicy constructs and initialiezes the endpoint.
func NewRetrievePolicy(
	r *http.Request,
) (Endpoint, error) {
	return &RetrievePolicy{}, nil
}

// Validate validates the input parameters.
func (e *RetrievePolicy) Validate(
	r *http.Request,
) error {
	e.Policy = pat.Param(r, "policy")

	return nil
}

// Execute executes the endpoint.
func (e *RetrievePolicy) Execute(
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
			"The policy you are trying to retrieve does not exist: %s.",
			e.Policy,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"policy": format.JSONPtr(ledger.NewPolicyResource(ctx, policy)),
	}, nil
}
