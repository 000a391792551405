package command

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/env"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmLogin is the command name.
	CmdNmLogin cli.CmdName = "login"
)

func init() {
	cli.Registrar[CmdNmLogin] = NewLogin
}

// Login stores the credentials of a ledger user locally.
type Login struct {
}

// NewLogin constructs and initializes the command.
func NewLogin() cli.Command {
	return &Login{}
}

// Name returns the command name.
func (c *Login) Name() cli.CmdName {
	return CmdNmLogin
}

// Help prints out the help message for the command.
func (c *Login) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger login\n")
	out.Normf("\n")
	out.Normf("  Logging in will store your credentials locally under:\n")
	out.Valuf("  ~/.ledger/credentials-" + string(env.Get(ctx).Environment) + ".json\n")
	out.Normf("\n")
	out.Normf("  The credentials are composed of your address (of the form \n  ")
	out.Valuf("von.neumann@ias.edu")
	out.Normf(" where ")
	out.Valuf("ias.edu")
	out.Normf(" is your ledger) along with your password.\n")
	out.Normf("\n")
	out.Normf("  If you don't have an account on a ledger yet, you can create one\n")
	out.Normf("  using: ")
	out.Boldf("ledger register")
	out.Normf("\n\n")
}

// Parse parses the arguments passed to the command.
func (c *Login) Parse(
	ctx context.Context,
	args []string,
) error {
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Login) Execute(
	ctx context.Context,
) error {

	reader := bufio.NewReader(os.Stdin)

	out.Normf("    Address []: ")
	address, _ := reader.ReadString('\n')

	out.Normf("    Password []: ")
	password, _ := reader.ReadString('\n')

	out.Normf("Is the information correct? [Y/n]: ")
	confirmation, _ := reader.ReadString('\n')
	confirmation = strings.TrimSpace(confirmation)
	if confirmation != "" && confirmation != "Y" {
		return errors.Trace(errors.Newf("Login aborted by user."))
	}

	err := cli.Login(ctx,
		strings.TrimSpace(address), strings.TrimSpace(password))
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
