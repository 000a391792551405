package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/Mkalbani/ManageAssets/ledger/app"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/logging"
)

var actFlag string

var envFlag string
var cnfFlag string
var dsnFlag string
var hstFlag string
var prtFlag string
var obsFlag string

var usrFlag string
var pasFlag string

func init() {
	flag.StringVar(&actFlag, "action",
		"run", "The action to perform")

	flag.StringVar(&envFlag, "env",
		"qa", "The environment to run in (qa, production), default: qa")
	flag.StringVar(&cnfFlag, "cnf",
		"", "The path to an optional HCL configuration file, default: none")
	flag.StringVar(&dsnFlag, "dsn",
		"", "The DSN of the database to use, default: sqlite3://~/.ledger/ledger-$env.db")
	flag.StringVar(&hstFlag, "hst",
		"", "The externally accessible host name of this ledger, default: none (required)")
	flag.StringVar(&prtFlag, "prt",
		"", "The port to listen on, default: 2612")
	flag.StringVar(&obsFlag, "observers",
		"", "A comma-separated list of observer URLs to propagate events to, default: none")

	flag.StringVar(&usrFlag, "username",
		"foo", "The user name of the user to upsert")
	flag.StringVar(&pasFlag, "password",
		"bar", "The password of the user to upsert")
}

func main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	ctx, err := app.BackgroundContextFromFlags(
		envFlag, cnfFlag, dsnFlag, hstFlag, prtFlag, obsFlag,
	)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	validActions := []string{"run", "create_user"}
	switch actFlag {
	case "run":
		mux, err := app.Build(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		err = app.Serve(ctx, mux)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	case "create_user":
		createUser(ctx, usrFlag, pasFlag)
	default:
		log.Fatalf("Invalid action `%s`, valid actions are: %s",
			actFlag, strings.Join(validActions, ", "))
	}
}

func createUser(
	ctx context.Context,
	username string,
	password string,
) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	user, err := model.LoadUserByUsername(ctx, username)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	if user != nil {
		logging.Logf(ctx, "Updating user: %s", username)
		err := user.UpdatePassword(ctx, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		err = user.Save(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	} else {
		logging.Logf(ctx, "Creating user: %s", username)
		_, err := model.CreateUser(ctx, username, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	}

	db.Commit(ctx)
}
