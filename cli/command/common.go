package command

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/url"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

// RegisterUser creates a user on the specified ledger host. It does not
// require credentials.
func RegisterUser(
	ctx context.Context,
	host string,
	username string,
	password string,
) (*ledger.UserResource, error) {
	m := cli.LedgerForHost(ctx, host)

	out.Statf("[Registering user] ledger=%s username=%s\n", host, username)

	status, raw, err := m.Post(ctx,
		"/users",
		url.Values{
			"username": {username},
			"password": {password},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusCreated {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var user ledger.UserResource
	err = raw.Extract("user", &user)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &user, nil
}

// TokenizeAsset tokenizes an asset for the currently authenticated user.
func TokenizeAsset(
	ctx context.Context,
	id string,
	symbol string,
	decimals int8,
	supply big.Int,
) (*ledger.AssetResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Tokenizing asset] user=%s@%s asset=%s supply=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		id, supply.String())

	status, raw, err := m.Post(ctx,
		"/assets",
		url.Values{
			"asset_id": {id},
			"symbol":   {symbol},
			"decimals": {fmt.Sprintf("%d", decimals)},
			"supply":   {supply.String()},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusCreated {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var asset ledger.AssetResource
	err = raw.Extract("asset", &asset)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &asset, nil
}

// RetrieveAsset retrieves an asset, returning nil if it does not exist.
func RetrieveAsset(
	ctx context.Context,
	id string,
) (*ledger.AssetResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Retrieving asset] user=%s@%s asset=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		id)

	status, raw, err := m.Get(ctx,
		fmt.Sprintf("/assets/%s", id))
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if e.ErrCode == "asset_not_tokenized" {
			return nil, nil
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var asset ledger.AssetResource
	err = raw.Extract("asset", &asset)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &asset, nil
}

// MintTokens mints new tokens for one of the current user's assets.
func MintTokens(
	ctx context.Context,
	asset string,
	amount big.Int,
) (*ledger.AssetResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Minting tokens] user=%s@%s asset=%s amount=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset, amount.String())

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/assets/%s/mint", asset),
		url.Values{
			"amount": {amount.String()},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var a ledger.AssetResource
	err = raw.Extract("asset", &a)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &a, nil
}

// BurnTokens burns tokens from the current user's holding.
func BurnTokens(
	ctx context.Context,
	asset string,
	amount big.Int,
) (*ledger.AssetResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Burning tokens] user=%s@%s asset=%s amount=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset, amount.String())

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/assets/%s/burn", asset),
		url.Values{
			"amount": {amount.String()},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var a ledger.AssetResource
	err = raw.Extract("asset", &a)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &a, nil
}

// TransferTokens transfers tokens from the current user to another holder.
func TransferTokens(
	ctx context.Context,
	asset string,
	to string,
	amount big.Int,
) (*ledger.HoldingResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Transferring tokens] user=%s@%s asset=%s to=%s amount=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset, to, amount.String())

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/assets/%s/transfers", asset),
		url.Values{
			"to":     {to},
			"amount": {amount.String()},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var holding ledger.HoldingResource
	err = raw.Extract("holding", &holding)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &holding, nil
}

// LockTokens locks a holder's tokens until the provided date.
func LockTokens(
	ctx context.Context,
	asset string,
	holder string,
	until string,
) (*ledger.LockResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Locking tokens] user=%s@%s asset=%s holder=%s until=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset, holder, until)

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/assets/%s/locks", asset),
		url.Values{
			"holder": {holder},
			"until":  {until},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var lock ledger.LockResource
	err = raw.Extract("lock", &lock)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &lock, nil
}

// UnlockTokens removes the lock on a holder's tokens.
func UnlockTokens(
	ctx context.Context,
	asset string,
	holder string,
) (*ledger.LockResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Unlocking tokens] user=%s@%s asset=%s holder=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset, holder)

	status, raw, err := m.Delete(ctx,
		fmt.Sprintf("/assets/%s/locks/%s", asset, holder))
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var lock ledger.LockResource
	err = raw.Extract("lock", &lock)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &lock, nil
}

// RetrieveBalance retrieves the balance of a holder for an asset.
func RetrieveBalance(
	ctx context.Context,
	asset string,
	holder string,
) (*ledger.BalanceResource, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Retrieving balance] user=%s@%s asset=%s holder=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset, holder)

	status, raw, err := m.Get(ctx,
		fmt.Sprintf("/assets/%s/balances/%s", asset, holder))
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var balance ledger.BalanceResource
	err = raw.Extract("balance", &balance)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &balance, nil
}

// ListHolders lists the holder addresses of an asset.
func ListHolders(
	ctx context.Context,
	asset string,
) ([]string, error) {
	m, err := cli.LedgerFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Listing holders] user=%s@%s asset=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		asset)

	status, raw, err := m.Get(ctx,
		fmt.Sprintf("/assets/%s/holders", asset))
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		err = raw.Extract("error", &e)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return nil, errors.Trace(
			errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
	}

	var holders []string
	err = raw.Extract("holders", &holders)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return holders, nil
}
