package app

import (
	"github.com/Mkalbani/ManageAssets/ledger/endpoint"
	goji "goji.io"
	"goji.io/pat"
)

// Controller binds the API
type Controller struct{}

// Bind registers the API routes.
func (c *Controller) Bind(
	mux *goji.Mux,
) {
	// Authenticated.
	mux.HandleFunc(pat.Post("/assets"), endpoint.HandlerFor(endpoint.EndPtTokenizeAsset))
	mux.HandleFunc(pat.Post("/assets/:asset/mint"), endpoint.HandlerFor(endpoint.EndPtMintTokens))
	mux.HandleFunc(pat.Post("/assets/:asset/burn"), endpoint.HandlerFor(endpoint.EndPtBurnTokens))
	mux.HandleFunc(pat.Post("/assets/:asset/transfers"), endpoint.HandlerFor(endpoint.EndPtTransferTokens))
	mux.HandleFunc(pat.Post("/assets/:asset/locks"), endpoint.HandlerFor(endpoint.EndPtLockTokens))
	mux.HandleFunc(pat.Delete("/assets/:asset/locks/:holder"), endpoint.HandlerFor(endpoint.EndPtUnlockTokens))
	mux.HandleFunc(pat.Post("/assets/:asset/valuation"), endpoint.HandlerFor(endpoint.EndPtUpdateValuation))
	mux.HandleFunc(pat.Post("/assets/:asset/whitelist"), endpoint.HandlerFor(endpoint.EndPtCreateWhitelistEntry))
	mux.HandleFunc(pat.Delete("/assets/:asset/whitelist/:address"), endpoint.HandlerFor(endpoint.EndPtDeleteWhitelistEntry))
	mux.HandleFunc(pat.Post("/assets/:asset/policies"), endpoint.HandlerFor(endpoint.EndPtCreatePolicy))
	mux.HandleFunc(pat.Post("/policies/:policy/cancel"), endpoint.HandlerFor(endpoint.EndPtCancelPolicy))
	mux.HandleFunc(pat.Post("/policies/:policy/suspend"), endpoint.HandlerFor(endpoint.EndPtSuspendPolicy))
	mux.HandleFunc(pat.Post("/policies/:policy/renew"), endpoint.HandlerFor(endpoint.EndPtRenewPolicy))
	mux.HandleFunc(pat.Post("/policies/:policy/claims"), endpoint.HandlerFor(endpoint.EndPtCreateClaim))
	mux.HandleFunc(pat.Post("/claims/:claim/approve"), endpoint.HandlerFor(endpoint.EndPtApproveClaim))
	mux.HandleFunc(pat.Post("/claims/:claim/pay"), endpoint.HandlerFor(endpoint.EndPtPayClaim))

	// Public.
	mux.HandleFunc(pat.Post("/users"), endpoint.HandlerFor(endpoint.EndPtCreateUser))
	mux.HandleFunc(pat.Get("/assets/:asset"), endpoint.HandlerFor(endpoint.EndPtRetrieveAsset))
	mux.HandleFunc(pat.Get("/assets/:asset/metadata"), endpoint.HandlerFor(endpoint.EndPtRetrieveMetadata))
	mux.HandleFunc(pat.Get("/assets/:asset/balances/:holder"), endpoint.HandlerFor(endpoint.EndPtRetrieveBalance))
	mux.HandleFunc(pat.Get("/assets/:asset/ownership/:holder"), endpoint.HandlerFor(endpoint.EndPtRetrieveOwnership))
	mux.HandleFunc(pat.Get("/assets/:asset/holders"), endpoint.HandlerFor(endpoint.EndPtListHolders))
	mux.HandleFunc(pat.Get("/assets/:asset/locks/:holder"), endpoint.HandlerFor(endpoint.EndPtRetrieveLock))
	mux.HandleFunc(pat.Get("/assets/:asset/audits"), endpoint.HandlerFor(endpoint.EndPtListAudits))
	mux.HandleFunc(pat.Get("/assets/:asset/whitelist"), endpoint.HandlerFor(endpoint.EndPtListWhitelistEntries))
	mux.HandleFunc(pat.Get("/assets/:asset/whitelist/:address"), endpoint.HandlerFor(endpoint.EndPtRetrieveWhitelistEntry))
	mux.HandleFunc(pat.Get("/assets/:asset/policies"), endpoint.HandlerFor(endpoint.EndPtListPolicies))
	mux.HandleFunc(pat.Get("/policies/:policy"), endpoint.HandlerFor(endpoint.EndPtRetrievePolicy))
	mux.HandleFunc(pat.Get("/claims/:claim"), endpoint.HandlerFor(endpoint.EndPtRetrieveClaim))
	mux.HandleFunc(pat.Post("/policies/:policy/expire"), endpoint.HandlerFor(endpoint.EndPtExpirePolicy))
}
