package ledger

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/Mkalbani/ManageAssets/audit"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/shopspring/decimal"
)

// AssetResource is the representation of a tokenized asset in the ledger
// API.
type AssetResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Symbol    string `json:"symbol"`
	Decimals  int8   `json:"decimals"`
	Tokenizer string `json:"tokenizer"`

	TotalSupply  *big.Int `json:"total_supply"`
	Circulation  *big.Int `json:"tokens_in_circulation"`
	LockedTokens *big.Int `json:"locked_tokens"`

	Valuation           *big.Int `json:"valuation"`
	HoldersCount        int64    `json:"holders_count"`
	MinVotingThreshold  *big.Int `json:"min_voting_threshold"`
	RevenueSharing      bool     `json:"revenue_sharing"`
	DetokenizeThreshold int64    `json:"detokenize_threshold"`
}

// NewAssetResource generates a new resource.
func NewAssetResource(
	ctx context.Context,
	asset *model.Asset,
) AssetResource {
	return AssetResource{
		ID:      asset.ID,
		Created: asset.Created.UnixNano() / (1000 * 1000),

		Symbol:    asset.Symbol,
		Decimals:  asset.Decimals,
		Tokenizer: asset.Tokenizer,

		TotalSupply:  (*big.Int)(&asset.TotalSupply),
		Circulation:  (*big.Int)(&asset.Circulation),
		LockedTokens: (*big.Int)(&asset.LockedTokens),

		Valuation:           (*big.Int)(&asset.Valuation),
		HoldersCount:        asset.HoldersCount,
		MinVotingThreshold:  (*big.Int)(&asset.MinVotingThreshold),
		RevenueSharing:      asset.RevenueSharing,
		DetokenizeThreshold: asset.DetokenizeThreshold,
	}
}

// MetadataResource is the representation of the metadata of an asset in the
// ledger API.
type MetadataResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Asset       string `json:"asset"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// NewMetadataResource generates a new resource.
func NewMetadataResource(
	ctx context.Context,
	metadata *model.Metadata,
) MetadataResource {
	return MetadataResource{
		ID:      metadata.Token,
		Created: metadata.Created.UnixNano() / (1000 * 1000),

		Asset:       metadata.Asset,
		Name:        metadata.Name,
		Description: metadata.Description,
		Type:        string(metadata.Type),
	}
}

// HoldingResource is the representation of an ownership record in the
// ledger API.
type HoldingResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Asset   string   `json:"asset"`
	Holder  string   `json:"holder"`
	Balance *big.Int `json:"balance"`

	VotingPower         *big.Int        `json:"voting_power"`
	DividendEntitlement *big.Int        `json:"dividend_entitlement"`
	OwnershipBps        int64           `json:"ownership_bps"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
}

// NewHoldingResource generates a new resource.
func NewHoldingResource(
	ctx context.Context,
	holding *model.Holding,
) HoldingResource {
	return HoldingResource{
		ID:      holding.Token,
		Created: holding.Created.UnixNano() / (1000 * 1000),

		Asset:   holding.Asset,
		Holder:  holding.Holder,
		Balance: (*big.Int)(&holding.Balance),

		VotingPower:         (*big.Int)(&holding.VotingPower),
		DividendEntitlement: (*big.Int)(&holding.DividendEntitlement),
		OwnershipBps:        holding.OwnershipBps,
		PurchasePrice:       holding.PurchasePrice,
	}
}

// BalanceResource is the representation of a holder balance in the ledger
// API. Holders without an ownership record have a 0 balance.
type BalanceResource struct {
	Asset   string   `json:"asset"`
	Holder  string   `json:"holder"`
	Balance *big.Int `json:"balance"`
}

// NewBalanceResource generates a new resource.
func NewBalanceResource(
	ctx context.Context,
	asset string,
	holder string,
	balance *big.Int,
) BalanceResource {
	return BalanceResource{
		Asset:   asset,
		Holder:  holder,
		Balance: balance,
	}
}

// OwnershipResource is the representation of the ownership of a holder over
// an asset in the ledger API, recomputed from the current balance and supply
// rather than read from the cached basis points.
type OwnershipResource struct {
	Asset        string   `json:"asset"`
	Holder       string   `json:"holder"`
	Balance      *big.Int `json:"balance"`
	OwnershipBps int64    `json:"ownership_bps"`
}

// NewOwnershipResource generates a new resource.
func NewOwnershipResource(
	ctx context.Context,
	asset string,
	holder string,
	balance *big.Int,
	ownershipBps int64,
) OwnershipResource {
	return OwnershipResource{
		Asset:        asset,
		Holder:       holder,
		Balance:      balance,
		OwnershipBps: ownershipBps,
	}
}

// LockResource is the representation of the lock state of a holder balance
// in the ledger API. UnlockAt is nil when no lock is in place.
type LockResource struct {
	Asset    string `json:"asset"`
	Holder   string `json:"holder"`
	Locked   bool   `json:"locked"`
	UnlockAt *int64 `json:"unlock_at"`
}

// NewLockResource generates a new resource.
func NewLockResource(
	ctx context.Context,
	asset string,
	holder string,
	locked bool,
	unlockAt *int64,
) LockResource {
	return LockResource{
		Asset:    asset,
		Holder:   holder,
		Locked:   locked,
		UnlockAt: unlockAt,
	}
}

// WhitelistEntryResource is the representation of a whitelist entry in the
// ledger API.
type WhitelistEntryResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Asset   string `json:"asset"`
	Address string `json:"address"`
}

// NewWhitelistEntryResource generates a new resource.
func NewWhitelistEntryResource(
	ctx context.Context,
	entry *model.WhitelistEntry,
) WhitelistEntryResource {
	return WhitelistEntryResource{
		ID:      entry.Token,
		Created: entry.Created.UnixNano() / (1000 * 1000),

		Asset:   entry.Asset,
		Address: entry.Address,
	}
}

// PolicyResource is the representation of an insurance policy in the ledger
// API.
type PolicyResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Asset   string `json:"asset"`
	Holder  string `json:"holder"`
	Insurer string `json:"insurer"`

	Type   string `json:"type"`
	Status string `json:"status"`

	Coverage   decimal.Decimal `json:"coverage"`
	Deductible decimal.Decimal `json:"deductible"`
	Premium    decimal.Decimal `json:"premium"`

	Start       int64 `json:"period_start"`
	End         int64 `json:"period_end"`
	AutoRenew   bool  `json:"auto_renew"`
	LastPayment int64 `json:"last_payment"`
}

// NewPolicyResource generates a new resource.
func NewPolicyResource(
	ctx context.Context,
	policy *model.Policy,
) PolicyResource {
	return PolicyResource{
		ID:      policy.Token,
		Created: policy.Created.UnixNano() / (1000 * 1000),

		Asset:   policy.Asset,
		Holder:  policy.Holder,
		Insurer: policy.Insurer,

		Type:   string(policy.Type),
		Status: string(policy.Status),

		Coverage:   policy.Coverage,
		Deductible: policy.Deductible,
		Premium:    policy.Premium,

		Start:       policy.Start.UnixNano() / (1000 * 1000),
		End:         policy.End.UnixNano() / (1000 * 1000),
		AutoRenew:   policy.AutoRenew,
		LastPayment: policy.LastPayment.UnixNano() / (1000 * 1000),
	}
}

// ClaimResource is the representation of an insurance claim in the ledger
// API.
type ClaimResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Policy   string `json:"policy"`
	Claimant string `json:"claimant"`

	Status         string          `json:"status"`
	Amount         decimal.Decimal `json:"amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

// NewClaimResource generates a new resource.
func NewClaimResource(
	ctx context.Context,
	claim *model.Claim,
) ClaimResource {
	return ClaimResource{
		ID:      claim.Token,
		Created: claim.Created.UnixNano() / (1000 * 1000),

		Policy:   claim.Policy,
		Claimant: claim.Claimant,

		Status:         string(claim.Status),
		Amount:         claim.Amount,
		ApprovedAmount: claim.ApprovedAmount,
	}
}

// UserResource is the representation of a registered user in the ledger API.
type UserResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Username string `json:"username"`
}

// NewUserResource generates a new resource.
func NewUserResource(
	ctx context.Context,
	user *model.User,
) UserResource {
	return UserResource{
		ID:      user.Token,
		Created: user.Created.UnixNano() / (1000 * 1000),

		Username: user.Username,
	}
}

// EventResource is the envelope under which domain events are recorded and
// delivered to observers. The ID is the envelope UUID observers can
// deduplicate on.
type EventResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Asset   string          `json:"asset"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// NewEventResource generates a new resource.
func NewEventResource(
	ctx context.Context,
	event *model.Event,
) EventResource {
	return EventResource{
		ID:      event.UUID,
		Created: event.Created.UnixNano() / (1000 * 1000),

		Asset:   event.Asset,
		Kind:    string(event.Kind),
		Payload: json.RawMessage(event.Payload),
	}
}

// AuditEntryResource is the representation of an audit log entry in the
// ledger API.
type AuditEntryResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Asset    string `json:"asset"`
	Action   string `json:"action"`
	Actor    string `json:"actor"`
	Details  string `json:"details"`
	Position int64  `json:"position"`
}

// NewAuditEntryResource generates a new resource.
func NewAuditEntryResource(
	ctx context.Context,
	entry *audit.Entry,
) AuditEntryResource {
	return AuditEntryResource{
		ID:      entry.Token,
		Created: entry.Created.UnixNano() / (1000 * 1000),

		Asset:    entry.Asset,
		Action:   string(entry.Action),
		Actor:    entry.Actor,
		Details:  entry.Details,
		Position: entry.Position,
	}
}
