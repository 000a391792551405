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
	// EndPtRetrieveClaim retrieves an insurance claim.
	EndPtRetrieveClaim EndPtName = "RetrieveClaim"
)

func init() {
	registrar[EndPtRetrieveClaim] = NewRetrieveClaim
}

// RetrieveClaim retrieves an insurance claim by token. It is not
// authenticated.
type RetrieveClaim struct {
	Claim string
}

// NewRetrieveClaim constructs and initialiezes the endpoint.
func NewRetrieveClaim(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveClaim{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveClaim) Validate(
	r *http.Request,
) error {
	e.Claim = pat.Param(r, "claim")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveClaim) Execute(
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
			"The claim you are trying to retrieve does not exist: %s.",
			e.Claim,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"claim": format.JSONPtr(ledger.NewClaimResource(ctx, claim)),
	}, nil
}
