package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtRetrieveWhitelistEntry retrieves the whitelist status of an
	// address.
	EndPtRetrieveWhitelistEntry EndPtName = "RetrieveWhitelistEntry"
)

func init() {
	registrar[EndPtRetrieveWhitelistEntry] = NewRetrieveWhitelistEntry
}

// RetrieveWhitelistEntry retrieves the whitelist status of an address for an
// asset. Addresses with no entry are simply not whitelisted. It is not
// authenticated.
type RetrieveWhitelistEntry struct {
	AssetID string
	Address string
}

// NewRetrieveWhitelistEntry constructs and initialiezes the endpoint.
func NewRetrieveWhitelistEntry(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveWhitelistEntry{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveWhitelistEntry) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")
	e.Address = pat.Param(r, "address")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveWhitelistEntry) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	entry, err := model.LoadWhitelistEntryByAssetAddress(ctx,
		e.AssetID, e.Address)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"whitelisted": format.JSONPtr(entry != nil),
	}, nil
}
