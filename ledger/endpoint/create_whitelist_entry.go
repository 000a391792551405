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
	// EndPtCreateWhitelistEntry adds an address to an asset whitelist.
	EndPtCreateWhitelistEntry EndPtName = "CreateWhitelistEntry"
)

func init() {
	registrar[EndPtCreateWhitelistEntry] = NewCreateWhitelistEntry
}

// CreateWhitelistEntry controls the addition of addresses to an asset
// whitelist. Only the tokenizer of the asset can add entries. Adding an
// address twice keeps a single entry. The whitelist is an attribute store:
// transfers are not restricted by it.
type CreateWhitelistEntry struct {
	Caller  string
	AssetID string
	Address string
}

// NewCreateWhitelistEntry constructs and initialiezes the endpoint.
func NewCreateWhitelistEntry(
	r *http.Request,
) (Endpoint, error) {
	return &CreateWhitelistEntry{}, nil
}

// Validate validates the input parameters.
func (e *CreateWhitelistEntry) Validate(
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
	address, err := ValidateAddress(ctx, r.PostFormValue("address"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Address = *address

	return nil
}

// Execute executes the endpoint.
func (e *CreateWhitelistEntry) Execute(
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
			"The asset you are trying to whitelist an address for is not "+
				"tokenized: %s.",
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
	if entry == nil {
		entry, err = model.CreateWhitelistEntry(ctx, asset.ID, e.Address)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"whitelist_entry": format.JSONPtr(
			ledger.NewWhitelistEntryResource(ctx, entry)),
	}, nil
}
