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
	// EndPtListPolicies lists the insurance policies covering an asset.
	EndPtListPolicies EndPtName = "ListPolicies"
)

func init() {
	registrar[EndPtListPolicies] = NewListPolicies
}

// ListPolicies lists the insurance policies covering an asset in creation
// order, whatever their status. It is not authenticated.
type ListPolicies struct {
	AssetID string
}

// NewListPolicies constructs and initialiezes the endpoint.
func NewListPolicies(
	r *http.Request,
) (Endpoint, error) {
	return &ListPolicies{}, nil
}

// Validate validates the input parameters.
func (e *ListPolicies) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")

	return nil
}

// Execute executes the endpoint.
func (e *ListPolicies) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	asset, err := model.LoadAssetByID(ctx, e.AssetID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if asset == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "asset_not_tokenized",
			"The asset you are trying to list the policies of is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	policies, err := model.LoadPoliciesByAsset(ctx, asset.ID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resources := []ledger.PolicyResource{}
	for _, policy := range policies {
		resources = append(resources, ledger.NewPolicyResource(ctx, policy))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"policies": format.JSONPtr(resources),
	}, nil
}
