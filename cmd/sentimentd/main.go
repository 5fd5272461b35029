package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/cmd/sentimentd/handlers"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/buildtime"
	kcs "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/configs/server"
	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
	kpg "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db/postgres"
	xe "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/errors"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/metrics"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/token"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils/echoutil"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils/filewatch"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	pversion := flag.Bool("version", false, "show version and quit")
	pmint := flag.Bool(
		"mint-admin-token", false,
		"print a new admin token signed with the configured secret, and quit",
	)
	flag.Parse()

	if *pversion {
		log.Println(buildtime.VersionString())
		return
	}

	if *pmint {
		conf, err := kcs.LoadServerConfig(*configPath)
		if err != nil {
			log.Fatalf("can not read configration: %s", err)
		}
		minted, err := mintAdminToken(conf)
		if err != nil {
			log.Fatalf("can not mint admin token: %s", err)
		}
		fmt.Println(minted)
		return
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	e := echo.New()

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	zlog.Info().Str("event", "application_starting").
		Str("version", buildtime.VERSION()).
		Str("lexicon", conf.Model.Lexicon).
		Msg("starting")

	// build the analyzer before serving anything. no model, no server.
	ana, err := analyzer.New(
		analyzer.WithLexiconFile(conf.Model.Lexicon),
		analyzer.WithMaxTokens(conf.Model.MaxTokens),
		analyzer.WithNeutralBand(conf.Model.NeutralBand),
	)
	if err != nil {
		zlog.Error().Str("event", "application_startup_failed").Err(err).Msg("model load failed")
		log.Fatalf("can not load the model: %s", err)
	}

	ctx := context.Background()
	hdb, err := getHistoryDatabase(ctx, conf)
	if err != nil {
		log.Fatalf("can not open history database: %s", err)
	}
	defer hdb.Close()

	if conf.Model.Lexicon != "" {
		// restart (via the orchestrator) to pick up lexicon updates
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, conf.Model.Lexicon)
		if err != nil {
			log.Fatalf("can not watch lexicon file: %s", err)
		}
		defer cancel()
		context.AfterFunc(wctx, func() {
			log.Println("lexicon file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by lexicon update: %s", err)
			}
		})
	}

	mtr := metrics.New()

	// handlers
	{
		e.GET("/", handlers.RootHandler(buildtime.VERSION()))
		e.GET("/health", handlers.HealthHandler(ana, buildtime.VERSION(), mtr))
		e.GET("/metrics", echo.WrapHandler(mtr.Handler()))
	}

	{
		hist := hdb.History()
		e.POST("/analyze", handlers.AnalyzeHandler(ana, hist, mtr, conf.CostPerInferenceUSD))
		e.POST("/analyze/batch", handlers.BatchAnalyzeHandler(ana, hist, mtr, conf.CostPerInferenceUSD))

		e.GET("/history", handlers.GetHistoryHandler(hist, mtr))
		e.GET("/history/stats", handlers.GetHistoryStatsHandler(hist, mtr))

		if conf.AdminEnabled() {
			issuer, err := token.NewIssuer(conf.Admin.Secret)
			if err != nil {
				log.Fatalf("can not set up admin auth: %s", err)
			}
			guard := token.Middleware(issuer)
			e.DELETE("/history", handlers.PurgeHistoryHandler(hist, mtr), guard)
		}
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	zlog.Info().Str("event", "application_ready").
		Bool("model_loaded", true).
		Str("model_version", ana.ModelVersion()).
		Bool("history_enabled", conf.HistoryEnabled()).
		Msg("ready")

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}

func getHistoryDatabase(ctx context.Context, conf *kcs.ServerConfig) (kdb.HistoryDatabase, error) {
	if !conf.HistoryEnabled() {
		return kdb.Null(), nil
	}
	return kpg.New(ctx, conf.HistoryDBURI)
}

// mintAdminToken mints the token DELETE /history requires,
// valid for the configured admin.tokenExpiry.
func mintAdminToken(conf *kcs.ServerConfig) (string, error) {
	if !conf.AdminEnabled() {
		return "", xe.New("admin.secret is not configured")
	}
	issuer, err := token.NewIssuer(conf.Admin.Secret)
	if err != nil {
		return "", err
	}
	return issuer.Issue("admin", conf.Admin.TokenExpiry)
}
