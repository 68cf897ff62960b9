package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/authority"
	"xdao.co/mintverify/grpcmint"
	"xdao.co/mintverify/metadata"
	"xdao.co/mintverify/mintverify"
	"xdao.co/mintverify/wallet"
)

const defaultRPC = "127.0.0.1:7788"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "derive-authority":
		return cmdDeriveAuthority(args[1:], out, errOut)
	case "content-uri":
		return cmdContentURI(args[1:], out, errOut)
	case "init-collection":
		return cmdInitCollection(args[1:], out, errOut)
	case "mint":
		return cmdMint(args[1:], out, errOut)
	case "update-authority":
		return cmdUpdateAuthority(args[1:], out, errOut)
	case "show-metadata":
		return cmdShowMetadata(args[1:], out, errOut)
	case "airdrop":
		return cmdAirdrop(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "mintverify: collection mint and membership verification CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mintverify key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  mintverify key list")
	fmt.Fprintln(w, "  mintverify derive-authority --seed <seed>")
	fmt.Fprintln(w, "  mintverify content-uri <file>")
	fmt.Fprintln(w, "  mintverify init-collection --signer <name> --seed <seed> --name <name> --symbol <sym> --uri <uri> [--fee-bps <n>] [--mint <addr>] [--rpc <addr>]")
	fmt.Fprintln(w, "  mintverify mint --signer <name> --collection <addr> --seed <seed> --name <name> --symbol <sym> --uri <uri> [--fee-bps <n>] [--mint <addr>] [--rpc <addr>]")
	fmt.Fprintln(w, "  mintverify update-authority --signer <name> --seed <seed> --new-authority <addr> [--rpc <addr>]")
	fmt.Fprintln(w, "  mintverify show-metadata <mint> [--rpc <addr>]")
	fmt.Fprintln(w, "  mintverify airdrop --address <addr> --amount <n> [--rpc <addr>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - keys are stored under ~/.mintverify/keys (0600 seed files)")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars)")
	fmt.Fprintln(w, "  - omitting --mint generates a fresh mint address")
	fmt.Fprintln(w, "  - airdrop only works against a daemon started with --allow-airdrop")
}

func dial(target string) (*grpcmint.Client, error) {
	client, err := grpcmint.Dial(target, grpcmint.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	client.Timeout = 30 * time.Second
	return client, nil
}

func loadSigner(keyDir, name string) (*wallet.Keypair, error) {
	store, err := wallet.OpenStore(keyDir)
	if err != nil {
		return nil, err
	}
	return store.Load(name)
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: mintverify key <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: init, list")
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return 2
	}
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var keyDir string
	var force bool
	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional seed as 64 hex chars (for reproducible demos)")
	fs.StringVar(&keyDir, "key-dir", "", "Key directory (default ~/.mintverify/keys)")
	fs.BoolVar(&force, "force", false, "Overwrite an existing key")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	store, err := wallet.OpenStore(keyDir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		seed, err = wallet.ParseSeedHex(seedHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
			return 2
		}
	}
	kp, err := store.Init(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created key: %s\n", kp.Address())
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var keyDir string
	fs.StringVar(&keyDir, "key-dir", "", "Key directory (default ~/.mintverify/keys)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	store, err := wallet.OpenStore(keyDir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	names, err := store.List()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, name := range names {
		kp, err := store.Load(name)
		if err != nil {
			fmt.Fprintf(out, "%s\t(unreadable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", name, kp.Address())
	}
	return 0
}

func cmdDeriveAuthority(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("derive-authority", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var seed string
	fs.StringVar(&seed, "seed", "", "Collection seed")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	auth, bump, err := authority.DeriveCollectionAuthority(seed)
	if err != nil {
		fmt.Fprintf(errOut, "derive: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "%s\t(bump %d)\n", auth, bump)
	return 0
}

func cmdContentURI(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("content-uri", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: mintverify content-uri <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	uri, err := metadata.ContentURI(b)
	if err != nil {
		fmt.Fprintf(errOut, "content-uri: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, uri)
	return 0
}

func cmdInitCollection(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("init-collection", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var rpc, keyDir, signer, seed, mintStr string
	var name, symbol, uri string
	var feeBps uint
	fs.StringVar(&rpc, "rpc", defaultRPC, "Daemon address")
	fs.StringVar(&keyDir, "key-dir", "", "Key directory (default ~/.mintverify/keys)")
	fs.StringVar(&signer, "signer", "", "Stored key name of the collection admin")
	fs.StringVar(&seed, "seed", "", "Collection seed")
	fs.StringVar(&mintStr, "mint", "", "Collection mint address (generated if empty)")
	fs.StringVar(&name, "name", "", "Collection name")
	fs.StringVar(&symbol, "symbol", "", "Collection symbol")
	fs.StringVar(&uri, "uri", "", "Collection content URI")
	fs.UintVar(&feeBps, "fee-bps", 0, "Seller fee in basis points")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if signer == "" {
		fmt.Fprintln(errOut, "missing --signer")
		return 2
	}
	kp, err := loadSigner(keyDir, signer)
	if err != nil {
		fmt.Fprintf(errOut, "load signer: %v\n", err)
		return 1
	}
	mint, err := resolveMint(mintStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --mint: %v\n", err)
		return 2
	}

	params := mintverify.InitializeCollectionParams{
		CollectionMint: mint,
		Seed:           seed,
		Metadata: mintverify.CollectionMetadata{
			Name:                 name,
			Symbol:               symbol,
			URI:                  uri,
			SellerFeeBasisPoints: uint16(feeBps),
		},
	}
	if err := params.Sign(kp, ""); err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}

	client, err := dial(rpc)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	res, err := client.InitializeCollection(params)
	if err != nil {
		fmt.Fprintf(errOut, "init-collection: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Collection mint: %s\n", res.CollectionMint)
	fmt.Fprintf(out, "Record:          %s\n", res.Record)
	fmt.Fprintf(out, "Edition:         %s\n", res.Edition)
	fmt.Fprintf(out, "Authority:       %s (bump %d)\n", res.Authority, res.Bump)
	return 0
}

func cmdMint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var rpc, keyDir, signer, seed, mintStr, collectionStr string
	var name, symbol, uri string
	var feeBps uint
	fs.StringVar(&rpc, "rpc", defaultRPC, "Daemon address")
	fs.StringVar(&keyDir, "key-dir", "", "Key directory (default ~/.mintverify/keys)")
	fs.StringVar(&signer, "signer", "", "Stored key name of the minting user")
	fs.StringVar(&seed, "seed", "", "Collection seed")
	fs.StringVar(&mintStr, "mint", "", "Item mint address (generated if empty)")
	fs.StringVar(&collectionStr, "collection", "", "Collection mint address")
	fs.StringVar(&name, "name", "", "Item name")
	fs.StringVar(&symbol, "symbol", "", "Item symbol")
	fs.StringVar(&uri, "uri", "", "Item content URI")
	fs.UintVar(&feeBps, "fee-bps", 0, "Seller fee in basis points")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if signer == "" {
		fmt.Fprintln(errOut, "missing --signer")
		return 2
	}
	if collectionStr == "" {
		fmt.Fprintln(errOut, "missing --collection")
		return 2
	}
	kp, err := loadSigner(keyDir, signer)
	if err != nil {
		fmt.Fprintf(errOut, "load signer: %v\n", err)
		return 1
	}
	collection, err := addr.Parse(collectionStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --collection: %v\n", err)
		return 2
	}
	mint, err := resolveMint(mintStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --mint: %v\n", err)
		return 2
	}

	params := mintverify.MintAndVerifyParams{
		ItemMint:       mint,
		CollectionMint: collection,
		Seed:           seed,
		Metadata: mintverify.ItemMetadata{
			Name:                 name,
			Symbol:               symbol,
			URI:                  uri,
			SellerFeeBasisPoints: uint16(feeBps),
		},
	}
	if err := params.Sign(kp, ""); err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}

	client, err := dial(rpc)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	res, err := client.MintAndVerify(params)
	if err != nil {
		fmt.Fprintf(errOut, "mint: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Item mint: %s\n", res.ItemMint)
	fmt.Fprintf(out, "Record:    %s\n", res.Record)
	fmt.Fprintf(out, "Edition:   %s\n", res.Edition)
	fmt.Fprintf(out, "Verified:  %v\n", res.Verified)
	return 0
}

func cmdUpdateAuthority(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("update-authority", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var rpc, keyDir, signer, seed, newAuthStr string
	fs.StringVar(&rpc, "rpc", defaultRPC, "Daemon address")
	fs.StringVar(&keyDir, "key-dir", "", "Key directory (default ~/.mintverify/keys)")
	fs.StringVar(&signer, "signer", "", "Stored key name of the collection admin")
	fs.StringVar(&seed, "seed", "", "Collection seed")
	fs.StringVar(&newAuthStr, "new-authority", "", "Proposed authority address")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if signer == "" {
		fmt.Fprintln(errOut, "missing --signer")
		return 2
	}
	if newAuthStr == "" {
		fmt.Fprintln(errOut, "missing --new-authority")
		return 2
	}
	kp, err := loadSigner(keyDir, signer)
	if err != nil {
		fmt.Fprintf(errOut, "load signer: %v\n", err)
		return 1
	}
	newAuth, err := addr.Parse(newAuthStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --new-authority: %v\n", err)
		return 2
	}

	params := mintverify.UpdateCollectionAuthorityParams{
		Seed:         seed,
		NewAuthority: newAuth,
	}
	if err := params.Sign(kp, ""); err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}

	client, err := dial(rpc)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	res, err := client.UpdateCollectionAuthority(params)
	if err != nil {
		fmt.Fprintf(errOut, "update-authority: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Authority remains: %s (bump %d)\n", res.CurrentAuthority, res.Bump)
	fmt.Fprintln(out, "Note: authority rotation is not supported; the authority is derived from the seed.")
	return 0
}

func cmdShowMetadata(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("show-metadata", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var rpc string
	fs.StringVar(&rpc, "rpc", defaultRPC, "Daemon address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: mintverify show-metadata <mint> [--rpc <addr>]")
		return 2
	}
	mint, err := addr.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid mint: %v\n", err)
		return 2
	}

	client, err := dial(rpc)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	record, err := client.GetMetadata(mint)
	if err != nil {
		fmt.Fprintf(errOut, "show-metadata: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Mint:             %s\n", record.Mint)
	fmt.Fprintf(out, "Name:             %s\n", record.Name)
	fmt.Fprintf(out, "Symbol:           %s\n", record.Symbol)
	fmt.Fprintf(out, "URI:              %s\n", record.URI)
	fmt.Fprintf(out, "Seller fee (bps): %d\n", record.SellerFeeBasisPoints)
	fmt.Fprintf(out, "Update authority: %s\n", record.UpdateAuthority)
	fmt.Fprintf(out, "Mutable:          %v\n", record.IsMutable)
	for _, c := range record.Creators {
		fmt.Fprintf(out, "Creator:          %s (share %d, verified %v)\n", c.Address, c.Share, c.Verified)
	}
	if record.Collection != nil {
		fmt.Fprintf(out, "Collection:       %s (verified %v)\n", record.Collection.Key, record.Collection.Verified)
	}
	return 0
}

func cmdAirdrop(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("airdrop", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var rpc, addressStr string
	var amount uint64
	fs.StringVar(&rpc, "rpc", defaultRPC, "Daemon address")
	fs.StringVar(&addressStr, "address", "", "Address to fund")
	fs.Uint64Var(&amount, "amount", 0, "Amount to credit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if addressStr == "" {
		fmt.Fprintln(errOut, "missing --address")
		return 2
	}
	address, err := addr.Parse(addressStr)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --address: %v\n", err)
		return 2
	}

	client, err := dial(rpc)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	balance, err := client.Airdrop(address, amount)
	if err != nil {
		fmt.Fprintf(errOut, "airdrop: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Balance: %d\n", balance)
	return 0
}

func resolveMint(s string) (addr.Address, error) {
	if s != "" {
		return addr.Parse(s)
	}
	kp, err := wallet.NewKeypair()
	if err != nil {
		return addr.Zero, err
	}
	return kp.Address(), nil
}
