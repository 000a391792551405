package command

import (
	"context"
	"math/big"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmBurn is the command name.
	CmdNmBurn cli.CmdName = "burn"
)

func init() {
	cli.Registrar[CmdNmBurn] = NewBurn
}

// Burn destroys tokens from the current user's holding.
type Burn struct {
	AssetID string
	Amount  big.Int
}

// NewBurn constructs and initializes the command.
func NewBurn() cli.Command {
	return &Burn{}
}

// Name returns the command name.
func (c *Burn) Name() cli.CmdName {
	return CmdNmBurn
}

// Help prints out the help message for the command.
func (c *Burn) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger burn <asset_id> <amount>\n")
	out.Normf("\n")
	out.Normf("  Burning destroys tokens from your holding, reducing the total supply of\n")
	out.Normf("  the asset.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger burn building-5th-ave 200000\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Burn) Parse(
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
func (c *Burn) Execute(
	ctx context.Context,
) error {
	asset, err := BurnTokens(ctx, c.AssetID, c.Amount)
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
