package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/ethereum"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/journal"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/ledger"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider/memvdb"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/router"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/service/orchestrator"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/service/providers"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/service/scanner"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/service/sweeper"
	"github.com/goodnatureofminers/provider-daemon/internal/config"
	"github.com/goodnatureofminers/provider-daemon/internal/metrics"
	"github.com/goodnatureofminers/provider-daemon/internal/transport"
	"github.com/goodnatureofminers/provider-daemon/pkg/batcher"
)

type options struct {
	DatabaseDriver  string        `long:"database-driver" env:"PROVIDERD_DATABASE_DRIVER" description:"ledger database driver" choice:"postgres" choice:"sqlite" default:"sqlite"`
	DatabaseDSN     string        `long:"database-dsn" env:"PROVIDERD_DATABASE_DSN" description:"ledger database DSN" default:"file:data/providerd.db?_pragma=busy_timeout(5000)"`
	RPCURL          string        `long:"rpc-url" env:"PROVIDERD_RPC_URL" description:"EVM JSON-RPC endpoint" required:"true"`
	RPCRPS          int           `long:"rpc-rps" env:"PROVIDERD_RPC_RPS" description:"RPC calls per second, 0 disables limiting" default:"0"`
	ChainID         int64         `long:"chain-id" env:"PROVIDERD_CHAIN_ID" description:"chain id used to sign transactions, 0 asks the node" default:"0"`
	RegistryAddress string        `long:"registry-address" env:"PROVIDERD_REGISTRY_ADDRESS" description:"network registry contract address" required:"true"`
	ProvidersFile   string        `long:"providers-file" env:"PROVIDERD_PROVIDERS_FILE" description:"providers file (YAML or JSON)" default:"data/providers.yaml"`
	DataDir         string        `long:"data-dir" env:"PROVIDERD_DATA_DIR" description:"directory with details/ and the OpenAPI spec" default:"data"`
	PipeAddr        string        `long:"pipe-addr" env:"PROVIDERD_PIPE_ADDR" description:"operator pipes listen address" default:":8080"`
	HealthAddr      string        `long:"health-addr" env:"PROVIDERD_HEALTH_ADDR" description:"health and metrics listen address" default:":8081"`
	GRPCAddr        string        `long:"grpc-addr" env:"PROVIDERD_GRPC_ADDR" description:"gRPC health listen address" default:":8082"`
	JournalDSN      string        `long:"journal-dsn" env:"PROVIDERD_JOURNAL_DSN" description:"ClickHouse DSN of the event journal, empty disables it"`
	PollInterval    time.Duration `long:"poll-interval" env:"PROVIDERD_POLL_INTERVAL" description:"deployment status poll interval" default:"5s"`
	BlockRetry      time.Duration `long:"block-retry" env:"PROVIDERD_BLOCK_RETRY" description:"pause before retrying a block" default:"3s"`
	SweepSchedule   string        `long:"sweep-schedule" env:"PROVIDERD_SWEEP_SCHEDULE" description:"cron spec of the balance sweep" default:"@every 1m"`
	MarkerRetention uint64        `long:"marker-retention" env:"PROVIDERD_MARKER_RETENTION" description:"blocks of processed markers to keep, 0 keeps all" default:"0"`
	VectorEndpoint  string        `long:"vector-endpoint" env:"PROVIDERD_VECTOR_ENDPOINT" description:"endpoint reported in vector database details" default:"providerd://memvdb"`
	ProvisionDelay  time.Duration `long:"provision-delay" env:"PROVIDERD_PROVISION_DELAY" description:"time a new vector database stays deploying" default:"0s"`
	LogLevel        string        `long:"log-level" env:"PROVIDERD_LOG_LEVEL" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"debug"`
	Env             string        `long:"env" env:"PROVIDERD_ENV" description:"runtime environment" choice:"dev" choice:"production" default:"dev"`
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{}
	if _, err := flags.ParseArgs(&opts, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(opts.Env, opts.LogLevel)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, opts, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("provider daemon failed", zap.Error(err))
	}
	logger.Info("provider daemon stopped")
}

func newLogger(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	providersCfg, err := config.LoadProviders(opts.ProvidersFile)
	if err != nil {
		return fmt.Errorf("invalid providers file: %w", err)
	}

	ldg, err := ledger.Open(ctx, opts.DatabaseDriver, opts.DatabaseDSN, metrics.NewLedger(opts.DatabaseDriver))
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	defer func() {
		_ = ldg.Close()
	}()

	client, err := ethclient.DialContext(ctx, opts.RPCURL)
	if err != nil {
		return fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	chainID := big.NewInt(opts.ChainID)
	if opts.ChainID == 0 {
		if chainID, err = client.ChainID(ctx); err != nil {
			return fmt.Errorf("get chain id: %w", err)
		}
	}
	logger.Info("connected to chain", zap.String("chain_id", chainID.String()))

	backend := ethereum.NewObservedClient(client, metrics.NewRPCClient(chainID.String()), opts.RPCRPS)
	registry := ethereum.NewRegistryClient(backend, common.HexToAddress(opts.RegistryAddress))

	pipes := transport.NewMux(logger.Named("pipe"))
	rt := router.New(ldg, metrics.NewRouter(), logger.Named("router"), opts.DataDir)
	set := providers.NewSet()
	boot := providers.NewBootstrapper(ldg, registry, rt, set,
		func(contract common.Address, key *ecdsa.PrivateKey) chain.AgreementSource {
			return ethereum.NewProtocolClient(backend, contract, key, chainID)
		},
		pipes.NewPipe,
		logger.Named("providers"),
	)

	if _, err := boot.LoadDetails(ctx, filepath.Join(opts.DataDir, "details")); err != nil {
		return err
	}

	vectors := memvdb.New(memvdb.Config{Endpoint: opts.VectorEndpoint, ProvisionDelay: opts.ProvisionDelay}, logger.Named("memvdb"))
	for _, tag := range providersCfg.Tags() {
		p := providersCfg[tag]
		providerKey, err := p.ProviderKey()
		if err != nil {
			return fmt.Errorf("provider %q: %w", tag, err)
		}
		operatorKey, err := p.OperatorKey()
		if err != nil {
			return fmt.Errorf("provider %q: %w", tag, err)
		}
		if _, err := boot.Register(ctx, providers.Config{
			Tag:             tag,
			ProviderKey:     providerKey,
			OperatorKey:     operatorKey,
			ProtocolAddress: p.Protocol(),
			Hooks:           vectors,
		}); err != nil {
			return err
		}
	}

	orch := orchestrator.New(ldg, metrics.NewOrchestrator(), logger.Named("orchestrator"), opts.PollInterval)
	defer orch.Stop()
	if _, err := orch.ResumePolling(ctx, set); err != nil {
		return fmt.Errorf("resume polling: %w", err)
	}

	var recorder scanner.Journal = journal.Nop{}
	if opts.JournalDSN != "" {
		store, err := journal.NewClickhouseStore(opts.JournalDSN)
		if err != nil {
			return fmt.Errorf("init journal: %w", err)
		}
		defer func() {
			_ = store.Close()
		}()
		j := journal.New(store, metrics.NewJournal(), logger.Named("journal"), batcher.Config{
			Size:         500,
			Interval:     5 * time.Second,
			RPS:          10,
			FlushTimeout: 5 * time.Second,
		})
		j.Start(ctx)
		defer j.Stop()
		recorder = j
	}

	sw := sweeper.New(set, metrics.NewSweeper(), logger.Named("sweeper"), sweeper.Config{Schedule: opts.SweepSchedule})
	if err := sw.Start(ctx); err != nil {
		return fmt.Errorf("start sweeper: %w", err)
	}
	defer sw.Stop()

	scan := scanner.New(
		ethereum.NewFeed(backend),
		ethereum.NewDecoder(),
		ldg,
		set,
		orch,
		recorder,
		metrics.NewScanner(),
		logger.Named("scanner"),
		scanner.Config{Retry: opts.BlockRetry, Retention: opts.MarkerRetention},
	)

	grpcServer, healthServer := transport.NewGRPCServer(logger.Named("grpc"))
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return transport.ServeHTTP(gCtx, logger, opts.PipeAddr, pipes.Handler())
	})
	g.Go(func() error {
		return transport.ServeHTTP(gCtx, logger, opts.HealthAddr, transport.HealthHandler())
	})
	g.Go(func() error {
		return transport.ServeGRPC(gCtx, logger, grpcServer, opts.GRPCAddr)
	})
	g.Go(func() error {
		err := scan.Run(gCtx)
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	})
	return g.Wait()
}
