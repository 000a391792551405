package endpoint

import (
	"context"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/shopspring/decimal"
)

// usernameRegexp is used to validate usernames (the local part of an
// address).
var usernameRegexp = regexp.MustCompile("^([a-zA-Z0-9-_.]{1,256})$")

// ValidateAssetID validates an external asset ID.
func ValidateAssetID(
	ctx context.Context,
	id string,
) (*string, error) {
	if !model.AssetIDRegexp.MatchString(id) {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "asset_id_invalid",
			"The asset ID you provided is invalid: %s. Asset IDs can use "+
				"alphanumeric and `-` characters only.",
			id,
		))
	}

	return &id, nil
}

// ValidateAddress validates a holder address. Holder addresses are fully
// qualified (username@ledger_host) and don't need to belong to registered
// users of this ledger.
func ValidateAddress(
	ctx context.Context,
	address string,
) (*string, error) {
	if !ledger.AddressRegexp.MatchString(address) {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "address_invalid",
			"The address you provided is invalid: %s. Addresses must be of "+
				"the form username@ledger_host.",
			address,
		))
	}

	return &address, nil
}

// ValidateAmount validates a token amount (supply, mint, burn or transfer).
func ValidateAmount(
	ctx context.Context,
	amount string,
) (*big.Int, error) {
	var a big.Int
	_, success := a.SetString(amount, 10)
	if !success ||
		a.Cmp(new(big.Int)) <= 0 ||
		a.Cmp(model.MaxTokenAmount) >= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_token_supply",
			"The token amount you provided is invalid: %s. Token amounts "+
				"must be integers between 1 and 2^128.",
			amount,
		))
	}

	return &a, nil
}

// ValidateValuation validates an asset valuation.
func ValidateValuation(
	ctx context.Context,
	valuation string,
) (*big.Int, error) {
	var v big.Int
	_, success := v.SetString(valuation, 10)
	if !success ||
		v.Cmp(new(big.Int)) <= 0 ||
		v.Cmp(model.MaxTokenAmount) >= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_valuation",
			"The valuation you provided is invalid: %s. Valuations must be "+
				"integers between 1 and 2^128.",
			valuation,
		))
	}

	return &v, nil
}

// ValidateMinVotingThreshold validates a minimal voting threshold. An empty
// value defaults to 0 (no threshold).
func ValidateMinVotingThreshold(
	ctx context.Context,
	threshold string,
) (*big.Int, error) {
	var t big.Int
	if threshold == "" {
		return &t, nil
	}
	_, success := t.SetString(threshold, 10)
	if !success ||
		t.Cmp(new(big.Int)) < 0 ||
		t.Cmp(model.MaxTokenAmount) >= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "min_voting_threshold_invalid",
			"The minimal voting threshold you provided is invalid: %s. "+
				"Thresholds must be integers between 0 and 2^128.",
			threshold,
		))
	}

	return &t, nil
}

// ValidateSymbol validates a token symbol.
func ValidateSymbol(
	ctx context.Context,
	symbol string,
) (*string, error) {
	if len(symbol) == 0 || len(symbol) > 64 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "symbol_invalid",
			"The symbol you provided is invalid: %s. Symbols must be "+
				"non-empty strings of at most 64 characters.",
			symbol,
		))
	}

	return &symbol, nil
}

// ValidateDecimals validates a token decimals count.
func ValidateDecimals(
	ctx context.Context,
	decimals string,
) (*int8, error) {
	d, err := strconv.ParseInt(decimals, 10, 8)
	if err != nil || d < 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "decimals_invalid",
			"The decimals count you provided is invalid: %s. Decimals "+
				"counts must be integers between 0 and 127.",
			decimals,
		))
	}
	converted := int8(d)

	return &converted, nil
}

// ValidateAssetType validates an asset metadata type. An empty value
// defaults to physical.
func ValidateAssetType(
	ctx context.Context,
	assetType string,
) (*model.MdType, error) {
	t := model.MdTpPhysical
	switch assetType {
	case "":
		t = model.MdTpPhysical
	case string(model.MdTpPhysical):
		t = model.MdTpPhysical
	case string(model.MdTpDigital):
		t = model.MdTpDigital
	case string(model.MdTpFinancial):
		t = model.MdTpFinancial
	case string(model.MdTpCustom):
		t = model.MdTpCustom
	default:
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "type_invalid",
			"The asset type you provided is invalid: %s. It can be either "+
				"physical, digital, financial or custom.",
			assetType,
		))
	}

	return &t, nil
}

// ValidatePolicyType validates an insurance policy type.
func ValidatePolicyType(
	ctx context.Context,
	policyType string,
) (*model.PlType, error) {
	t := model.PlTpLiability
	switch policyType {
	case string(model.PlTpLiability):
		t = model.PlTpLiability
	case string(model.PlTpProperty):
		t = model.PlTpProperty
	case string(model.PlTpComprehensive):
		t = model.PlTpComprehensive
	case string(model.PlTpCustom):
		t = model.PlTpCustom
	default:
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "type_invalid",
			"The policy type you provided is invalid: %s. It can be either "+
				"liability, property, comprehensive or custom.",
			policyType,
		))
	}

	return &t, nil
}

// ValidateDate validates a date expressed as a unix timestamp in seconds or
// an RFC3339 string.
func ValidateDate(
	ctx context.Context,
	date string,
) (*time.Time, error) {
	if s, err := strconv.ParseInt(date, 10, 64); err == nil && s >= 0 {
		t := time.Unix(s, 0).UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		t = t.UTC()
		return &t, nil
	}

	return nil, errors.Trace(errors.NewUserErrorf(nil,
		400, "date_invalid",
		"The date you provided is invalid: %s. Dates must be positive unix "+
			"timestamps in seconds or RFC3339 strings.",
		date,
	))
}

// ValidateCoverage validates an insurance coverage amount.
func ValidateCoverage(
	ctx context.Context,
	coverage string,
) (*decimal.Decimal, error) {
	c, err := decimal.NewFromString(coverage)
	if err != nil || c.Sign() <= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "coverage_invalid",
			"The coverage amount you provided is invalid: %s. Coverage "+
				"amounts must be positive decimals.",
			coverage,
		))
	}

	return &c, nil
}

// ValidateDeductible validates an insurance deductible.
func ValidateDeductible(
	ctx context.Context,
	deductible string,
) (*decimal.Decimal, error) {
	d, err := decimal.NewFromString(deductible)
	if err != nil {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "deductible_invalid",
			"The deductible you provided is invalid: %s. Deductibles must "+
				"be decimals.",
			deductible,
		))
	}

	return &d, nil
}

// ValidatePremium validates an insurance premium.
func ValidatePremium(
	ctx context.Context,
	premium string,
) (*decimal.Decimal, error) {
	p, err := decimal.NewFromString(premium)
	if err != nil || p.Sign() <= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "premium_invalid",
			"The premium you provided is invalid: %s. Premiums must be "+
				"positive decimals.",
			premium,
		))
	}

	return &p, nil
}

// ValidateClaimAmount validates an insurance claim amount.
func ValidateClaimAmount(
	ctx context.Context,
	amount string,
) (*decimal.Decimal, error) {
	a, err := decimal.NewFromString(amount)
	if err != nil || a.Sign() <= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "amount_invalid",
			"The claim amount you provided is invalid: %s. Claim amounts "+
				"must be positive decimals.",
			amount,
		))
	}

	return &a, nil
}

// ValidateAutoRenew validates an auto renewal flag. An empty value defaults
// to false.
func ValidateAutoRenew(
	ctx context.Context,
	autoRenew string,
) (*bool, error) {
	if autoRenew == "" {
		f := false
		return &f, nil
	}
	b, err := strconv.ParseBool(autoRenew)
	if err != nil {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "auto_renew_invalid",
			"The auto renewal flag you provided is invalid: %s. It can be "+
				"either true or false.",
			autoRenew,
		))
	}

	return &b, nil
}

// ValidateUsername validates a username.
func ValidateUsername(
	ctx context.Context,
	username string,
) (*string, error) {
	if !usernameRegexp.MatchString(username) {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "username_invalid",
			"The username you provided is invalid: %s. Usernames can use "+
				"alphanumeric, `-`, `_` and `.` characters only.",
			username,
		))
	}

	return &username, nil
}

// ValidatePassword validates a password.
func ValidatePassword(
	ctx context.Context,
	password string,
) (*string, error) {
	if len(password) < 8 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "password_invalid",
			"The password you provided is invalid. Passwords must be at "+
				"least 8 characters long.",
		))
	}

	return &password, nil
}
