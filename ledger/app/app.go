package app

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	goji "goji.io"

	"github.com/facebookgo/grace/gracehttp"
	"github.com/hashicorp/hcl"
	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/async"
	"github.com/Mkalbani/ManageAssets/ledger/lib/authentication"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/env"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/logging"
	"github.com/Mkalbani/ManageAssets/lib/recoverer"
	"github.com/Mkalbani/ManageAssets/lib/requestlogger"

	// force initialization of schemas
	_ "github.com/Mkalbani/ManageAssets/audit"
	_ "github.com/Mkalbani/ManageAssets/ledger/model/schemas"
)

// ConfigFile is the representation of the optional HCL configuration file.
// Flags take precedence over the values it carries.
type ConfigFile struct {
	Host      string   `hcl:"host"`
	Port      string   `hcl:"port"`
	DSN       string   `hcl:"dsn"`
	Observers []string `hcl:"observers"`
}

// readConfigFile parses the HCL configuration file at the provided path. An
// empty path is a valid, empty configuration.
func readConfigFile(
	path string,
) (*ConfigFile, error) {
	cnf := ConfigFile{}
	if path == "" {
		return &cnf, nil
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err := hcl.Unmarshal(raw, &cnf); err != nil {
		return nil, errors.Trace(err)
	}

	return &cnf, nil
}

// BackgroundContextFromFlags initializes a background context fully loaded
// with everything that could be extracted from the flags and the optional
// configuration file.
func BackgroundContextFromFlags(
	envFlag string,
	cnfFlag string,
	dsnFlag string,
	hstFlag string,
	prtFlag string,
	obsFlag string,
) (context.Context, error) {
	ctx := context.Background()

	ledgerEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	if envFlag == "production" || envFlag == "prod" {
		ledgerEnv.Environment = env.Production
	}

	cnf, err := readConfigFile(cnfFlag)
	if err != nil {
		return nil, errors.Trace(err)
	}

	host := cnf.Host
	if hstFlag != "" {
		host = hstFlag
	}
	ledgerEnv.Config[ledger.EnvCfgHost] = host

	port := fmt.Sprintf("%d", ledger.DefaultPort[ledgerEnv.Environment])
	if cnf.Port != "" {
		port = cnf.Port
	}
	if prtFlag != "" {
		port = prtFlag
	}
	ledgerEnv.Config[ledger.EnvCfgPort] = port

	observers := strings.Join(cnf.Observers, ",")
	if obsFlag != "" {
		observers = obsFlag
	}
	ledgerEnv.Config[ledger.EnvCfgObservers] = observers

	ctx = env.With(ctx, &ledgerEnv)

	dsn := dsnFlag
	if dsn == "" {
		dsn = cnf.DSN
	}
	ledgerDB, err := db.NewDBForDSN(ctx,
		dsn,
		fmt.Sprintf("sqlite3://~/.ledger/ledger-%s.db",
			env.Get(ctx).Environment))
	if err != nil {
		return nil, errors.Trace(err)
	}
	err = db.CreateDBTables(ctx, "ledger", ledgerDB)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ctx = db.WithDB(ctx, "ledger", ledgerDB)

	a, err := async.NewAsync(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ctx = async.With(ctx, a)

	return ctx, nil
}

// Build initializes the app and its web stack.
func Build(
	ctx context.Context,
) (*goji.Mux, error) {
	if ledger.GetHost(ctx) == "" {
		if env.Get(ctx).Environment == env.Production {
			return nil, errors.Trace(errors.Newf(
				"You must set the `-host` flag (or the `host` config value) to a publicly accessible hostname observers can use to identify this ledger (placing the ledger behind a HAProxy, NGINX or similar for SSL termination in production). If you're just testing, please run with `-env=qa` and `-host=127.0.0.1`",
			))
		}
		return nil, errors.Trace(errors.Newf(
			"You must set the `-host` flag (or the `host` config value) to the hostname of this ledger. You can use `-host=127.0.0.1` for testing purposes.",
		))
	}

	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDBMap(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(async.Middleware(async.Get(ctx)))
	mux.Use(authentication.Middleware)

	logging.Logf(ctx, "Initializing: environment=%s host=%s port=%s",
		env.Get(ctx).Environment, ledger.GetHost(ctx), ledger.GetPort(ctx))

	(&Controller{}).Bind(mux)

	// Start an async worker.
	go func() {
		async.Get(ctx).Run()
	}()

	return mux, nil
}

// Serve the goji mux.
func Serve(
	ctx context.Context,
	mux *goji.Mux,
) error {
	s := &http.Server{
		Addr:         fmt.Sprintf(":%s", ledger.GetPort(ctx)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Handler:      mux,
	}

	logging.Logf(ctx, "Listening: port=%s", ledger.GetPort(ctx))

	err := gracehttp.Serve(s)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
