package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"xdao.co/mintverify/grpcmint"
	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/ledger/memledger"
	"xdao.co/mintverify/ledger/sqlledger"
	"xdao.co/mintverify/mintverify"
)

// Config is the optional TOML configuration file. Flags override it.
type Config struct {
	Listen       string `toml:"listen"`
	Backend      string `toml:"backend"`
	DB           string `toml:"db"`
	AllowAirdrop bool   `toml:"allow_airdrop"`
	Debug        bool   `toml:"debug"`
}

func defaultConfig() Config {
	return Config{
		Listen:  "127.0.0.1:7788",
		Backend: "sqlite",
		DB:      "mintverify.db",
	}
}

func main() {
	fs := flag.NewFlagSet("mintverifyd", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	listen := fs.String("listen", "", "listen address")
	backend := fs.String("backend", "", "ledger backend: mem or sqlite")
	db := fs.String("db", "", "sqlite database path")
	allowAirdrop := fs.Bool("allow-airdrop", false, "enable the Airdrop RPC (development ledgers only)")
	debug := fs.Bool("debug", false, "debug logging")

	_ = fs.Parse(os.Args[1:])

	cfg := defaultConfig()
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "parse config: %v\n", err)
			os.Exit(2)
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *db != "" {
		cfg.DB = *db
	}
	if *allowAirdrop {
		cfg.AllowAirdrop = true
	}
	if *debug {
		cfg.Debug = true
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("open ledger", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}
	defer lis.Close()

	program := mintverify.New(store, mintverify.WithLogger(log))
	s := grpc.NewServer()
	grpcmint.RegisterMintServer(s, &grpcmint.Server{
		Program:      program,
		Store:        store,
		Log:          log,
		AllowAirdrop: cfg.AllowAirdrop,
	})

	log.Info("mintverifyd listening",
		zap.String("addr", lis.Addr().String()),
		zap.String("backend", cfg.Backend),
		zap.Bool("airdrop", cfg.AllowAirdrop),
	)
	if err := s.Serve(lis); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStore(cfg Config) (ledger.Store, error) {
	switch cfg.Backend {
	case "mem":
		return memledger.New(), nil
	case "sqlite":
		return sqlledger.Open(cfg.DB)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q (expected mem or sqlite)", cfg.Backend)
	}
}
