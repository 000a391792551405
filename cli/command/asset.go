package command

import (
	"context"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmAsset is the command name.
	CmdNmAsset cli.CmdName = "asset"
)

func init() {
	cli.Registrar[CmdNmAsset] = NewAsset
}

// Asset retrieves an asset and its supply details.
type Asset struct {
	AssetID string
}

// NewAsset constructs and initializes the command.
func NewAsset() cli.Command {
	return &Asset{}
}

// Name returns the command name.
func (c *Asset) Name() cli.CmdName {
	return CmdNmAsset
}

// Help prints out the help message for the command.
func (c *Asset) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger asset <asset_id>\n")
	out.Normf("\n")
	out.Normf("  Retrieves an asset along with its supply, circulation and valuation.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger asset building-5th-ave\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Asset) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 1 {
		return errors.Trace(
			errors.Newf("Expected an asset id."))
	}
	c.AssetID = args[0]

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Asset) Execute(
	ctx context.Context,
) error {
	asset, err := RetrieveAsset(ctx, c.AssetID)
	if err != nil {
		return errors.Trace(err)
	}
	if asset == nil {
		return errors.Trace(
			errors.Newf("Asset not tokenized: %s", c.AssetID))
	}

	out.Boldf("Asset:\n")
	out.Normf("  ID            : ")
	out.Valuf("%s\n", asset.ID)
	out.Normf("  Symbol        : ")
	out.Valuf("%s\n", asset.Symbol)
	out.Normf("  Tokenizer     : ")
	out.Valuf("%s\n", asset.Tokenizer)
	out.Normf("  Total supply  : ")
	out.Valuf("%s\n", asset.TotalSupply.String())
	out.Normf("  Circulation   : ")
	out.Valuf("%s\n", asset.Circulation.String())
	out.Normf("  Valuation     : ")
	out.Valuf("%s\n", asset.Valuation.String())
	out.Normf("  Holders count : ")
	out.Valuf("%d\n", asset.HoldersCount)

	return nil
}
