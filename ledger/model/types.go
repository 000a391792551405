// OWNER: mkalbani

package model

import (
	"database/sql/driver"
	"math/big"

	"github.com/Mkalbani/ManageAssets/lib/errors"
)

// Amount extends big.Int to implement sql.Scanner and driver.Valuer.
type Amount big.Int

// Scan implements sql.Scanner.
func (b *Amount) Scan(src interface{}) error {
	switch src := src.(type) {
	case int64:
		(*big.Int)(b).SetInt64(src)
	case []byte:
		if _, success := (*big.Int)(b).SetString(string(src), 10); !success {
			return errors.Newf("Impossible to set Amount with string: %q", src)
		}
	case string:
		if _, success := (*big.Int)(b).SetString(src, 10); !success {
			return errors.Newf("Impossible to set Amount with string: %q", src)
		}
	default:
		return errors.Newf("Incompatible type for Amount with value: %q", src)
	}

	return nil
}

// Value implements driver.Valuer.
func (b Amount) Value() (value driver.Value, err error) {
	return (*big.Int)(&b).String(), nil
}

// MaxTokenAmount is the maximal token amount for any balance or supply
// stored by the ledger.
var MaxTokenAmount = new(big.Int).Exp(
	big.NewInt(2), big.NewInt(128), nil)

// TkName represents a task name.
type TkName string

// TkStatus represents a task status.
type TkStatus string

const (
	// TkStPending new or have been retried less than the task max retries.
	TkStPending TkStatus = "pending"
	// TkStSucceeded successfully executed once.
	TkStSucceeded TkStatus = "succeeded"
	// TkStFailed retried more than max retries with no success.
	TkStFailed TkStatus = "failed"
)

// Value implements driver.Valuer.
func (s TkStatus) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *TkStatus) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = TkStatus(src)
	case string:
		*s = TkStatus(src)
	default:
		return errors.Newf(
			"Incompatible status for TkStatus with value: %q", src)
	}

	return nil
}

// Value implements driver.Valuer.
func (s TkName) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *TkName) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = TkName(src)
	case string:
		*s = TkName(src)
	default:
		return errors.Newf(
			"Incompatible status for TkName with value: %q", src)
	}

	return nil
}

// MdType is the type of an asset described by its metadata.
type MdType string

const (
	// MdTpPhysical is a physical asset (real estate, equipment, ...).
	MdTpPhysical MdType = "physical"
	// MdTpDigital is a digital asset.
	MdTpDigital MdType = "digital"
	// MdTpFinancial is a financial asset (debt, equity, ...).
	MdTpFinancial MdType = "financial"
	// MdTpCustom is an asset of any other type.
	MdTpCustom MdType = "custom"
)

// Value implements driver.Valuer.
func (s MdType) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *MdType) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = MdType(src)
	case string:
		*s = MdType(src)
	default:
		return errors.Newf(
			"Incompatible type for MdType with value: %q", src)
	}

	return nil
}

// PlType is the type of an insurance policy.
type PlType string

const (
	// PlTpLiability is a liability policy.
	PlTpLiability PlType = "liability"
	// PlTpProperty is a property policy.
	PlTpProperty PlType = "property"
	// PlTpComprehensive is a comprehensive policy.
	PlTpComprehensive PlType = "comprehensive"
	// PlTpCustom is a policy of any other type.
	PlTpCustom PlType = "custom"
)

// Value implements driver.Valuer.
func (s PlType) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *PlType) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = PlType(src)
	case string:
		*s = PlType(src)
	default:
		return errors.Newf(
			"Incompatible type for PlType with value: %q", src)
	}

	return nil
}

// PlStatus is the status of an insurance policy.
type PlStatus string

const (
	// PlStActive is used to mark a policy as active.
	PlStActive PlStatus = "active"
	// PlStExpired is used to mark a policy as expired.
	PlStExpired PlStatus = "expired"
	// PlStCancelled is used to mark a policy as cancelled.
	PlStCancelled PlStatus = "cancelled"
	// PlStSuspended is used to mark a policy as suspended.
	PlStSuspended PlStatus = "suspended"
)

// Value implements driver.Valuer.
func (s PlStatus) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *PlStatus) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = PlStatus(src)
	case string:
		*s = PlStatus(src)
	default:
		return errors.Newf(
			"Incompatible status for PlStatus with value: %q", src)
	}

	return nil
}

// ClStatus is the status of an insurance claim.
type ClStatus string

const (
	// ClStSubmitted is used to mark a claim as submitted.
	ClStSubmitted ClStatus = "submitted"
	// ClStUnderReview is used to mark a claim as under review.
	ClStUnderReview ClStatus = "under_review"
	// ClStApproved is used to mark a claim as approved.
	ClStApproved ClStatus = "approved"
	// ClStRejected is used to mark a claim as rejected.
	ClStRejected ClStatus = "rejected"
	// ClStPaid is used to mark a claim as paid.
	ClStPaid ClStatus = "paid"
)

// Value implements driver.Valuer.
func (s ClStatus) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *ClStatus) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = ClStatus(src)
	case string:
		*s = ClStatus(src)
	default:
		return errors.Newf(
			"Incompatible status for ClStatus with value: %q", src)
	}

	return nil
}

// EvKind is the kind of a domain event.
type EvKind string

const (
	// EvKdAssetTokenized marks the creation of a tokenized asset.
	EvKdAssetTokenized EvKind = "asset_tokenized"
	// EvKdTokensMinted marks a supply increase.
	EvKdTokensMinted EvKind = "tokens_minted"
	// EvKdTokensBurned marks a supply decrease.
	EvKdTokensBurned EvKind = "tokens_burned"
	// EvKdTokensTransferred marks a transfer between holders.
	EvKdTokensTransferred EvKind = "tokens_transferred"
	// EvKdTokensLocked marks the locking of a holder balance.
	EvKdTokensLocked EvKind = "tokens_locked"
	// EvKdTokensUnlocked marks the unlocking of a holder balance.
	EvKdTokensUnlocked EvKind = "tokens_unlocked"
	// EvKdValuationUpdated marks an asset valuation update.
	EvKdValuationUpdated EvKind = "valuation_updated"
)

// Value implements driver.Valuer.
func (s EvKind) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *EvKind) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = EvKind(src)
	case string:
		*s = EvKind(src)
	default:
		return errors.Newf(
			"Incompatible kind for EvKind with value: %q", src)
	}

	return nil
}
