package command

import (
	"context"
	"math/big"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmMint is the command name.
	CmdNmMint cli.CmdName = "mint"
)

func init() {
	cli.Registrar[CmdNmMint] = NewMint
}

// Mint creates new tokens for an asset the current user tokenized.
type Mint struct {
	AssetID string
	Amount  big.Int
}

// NewMint constructs and initializes the command.
func NewMint() cli.Command {
	return &Mint{}
}

// Name returns the command name.
func (c *Mint) Name() cli.CmdName {
	return CmdNmMint
}

// Help prints out the help message for the command.
func (c *Mint) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger mint <asset_id> <amount>\n")
	out.Normf("\n")
	out.Normf("  Minting creates new tokens for an asset you tokenized and credits them\n")
	out.Normf("  to your holding.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger mint building-5th-ave 500000\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Mint) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 2 {
		return errors.Trace(
			errors.Newf("Expected an asset id and an amount."))
	}
	c.AssetID = args[0]

	var amount big.Int
	if _, ok := amount.SetString(args[1], 10); !ok {
		return errors.Trace(
			errors.Newf("Invalid amount: %s", args[1]))
	}
	c.Amount = amount

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Mint) Execute(
	ctx context.Context,
) error {
	asset, err := MintTokens(ctx, c.AssetID, c.Amount)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Asset:\n")
	out.Normf("  ID           : ")
	out.Valuf("%s\n", asset.ID)
	out.Normf("  Total supply : ")
	out.Valuf("%s\n", asset.TotalSupply.String())
	out.Normf("  Circulation  : ")
	out.Valuf("%s\n", asset.Circulation.String())

	return nil
}
