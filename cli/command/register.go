// OWNER: mkalbani

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmRegister is the command name.
	CmdNmRegister cli.CmdName = "register"
)

func init() {
	cli.Registrar[CmdNmRegister] = NewRegister
}

// Register creates a new user on a ledger and logs in as that user.
type Register struct {
}

// NewRegister constructs and initializes the command.
func NewRegister() cli.Command {
	return &Register{}
}

// Name returns the command name.
func (c *Register) Name() cli.CmdName {
	return CmdNmRegister
}

// Help prints out the help message for the command.
func (c *Register) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger register\n")
	out.Normf("\n")
	out.Normf("  Registering creates a user on the ledger of your choice and stores the\n")
	out.Normf("  resulting credentials locally (see ")
	out.Boldf("ledger login")
	out.Normf(").\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Register) Parse(
	ctx context.Context,
	args []string,
) error {
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Register) Execute(
	ctx context.Context,
) error {
	reader := bufio.NewReader(os.Stdin)

	out.Normf("      Ledger []: ")
	host, _ := reader.ReadString('\n')
	host = strings.TrimSpace(host)

	out.Normf("    Username []: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	out.Normf("    Password []: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	out.Normf("Is the information correct? [Y/n]: ")
	confirmation, _ := reader.ReadString('\n')
	confirmation = strings.TrimSpace(confirmation)
	if confirmation != "" && confirmation != "Y" {
		return errors.Trace(errors.Newf("Registration aborted by user."))
	}

	user, err := RegisterUser(ctx, host, username, password)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("User:\n")
	out.Normf("  ID       : ")
	out.Valuf("%s\n", user.ID)
	out.Normf("  Username : ")
	out.Valuf("%s\n", user.Username)

	err = cli.Login(ctx,
		fmt.Sprintf("%s@%s", username, host), password)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
