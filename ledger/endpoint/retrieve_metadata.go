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
	// EndPtRetrieveMetadata retrieves the metadata of a tokenized asset.
	EndPtRetrieveMetadata EndPtName = "RetrieveMetadata"
)

func init() {
	registrar[EndPtRetrieveMetadata] = NewRetrieveMetadata
}

// RetrieveMetadata retrieves the metadata attached to a tokenized asset. It
// is not authenticated.
type RetrieveMetadata struct {
	AssetID string
}

// NewRetrieveMetadata constructs and initialiezes the endpoint.
func NewRetrieveMetadata(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveMetadata{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveMetadata) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveMetadata) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	metadata, err := model.LoadMetadataByAsset(ctx, e.AssetID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if metadata == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "asset_not_tokenized",
			"The asset you are trying to retrieve the metadata of is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"metadata": format.JSONPtr(ledger.NewMetadataResource(ctx, metadata)),
	}, nil
}
