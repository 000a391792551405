package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger/lib/authentication"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtDeleteWhitelistEntry removes an address from an asset whitelist.
	EndPtDeleteWhitelistEntry EndPtName = "DeleteWhitelistEntry"
)

func init() {
	registrar[EndPtDeleteWhitelistEntry] = NewDeleteWhitelistEntry
}

// DeleteWhitelistEntry controls the removal of addresses from an asset
// whitelist. Only the tokenizer of the asset can remove entries. Removing an
// address that is not whitelisted is a no-op.
type DeleteWhitelistEntry struct {
	Caller  string
	AssetID string
	Address string
}

// NewDeleteWhitelistEntry constructs and initialiezes the endpoint.
func NewDeleteWhitelistEntry(
	r *http.Request,
) (Endpoint, error) {
	return &DeleteWhitelistEntry{}, nil
}

// Validate validates the input parameters.
func (e *DeleteWhitelistEntry) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)

	// Validate asset.
	id, err := ValidateAssetID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate address.
	address, err := ValidateAddress(ctx, pat.Param(r, "address"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Address = *address

	return nil
}

// Execute executes the endpoint.
func (e *DeleteWhitelistEntry) Execute(
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
			"The asset you are trying to remove a whitelisted address for "+
				"is not tokenized: %s.",
			e.AssetID,
		))
	}

	if asset.Tokenizer != e.Caller {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the tokenizer of the asset can manage its whitelist: %s.",
			asset.Tokenizer,
		))
	}

	entry, err := model.LoadWhitelistEntryByAssetAddress(ctx,
		asset.ID, e.Address)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}
	if entry != nil {
		err = entry.Delete(ctx)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"whitelisted": format.JSONPtr(false),
	}, nil
}
