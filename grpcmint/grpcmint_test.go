package grpcmint

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/mintverify/ledger/memledger"
	"xdao.co/mintverify/mintverify"
	"xdao.co/mintverify/wallet"
)

func newTestClient(t *testing.T, srv *Server) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	grpcSrv := grpc.NewServer()
	RegisterMintServer(grpcSrv, srv)

	go func() {
		_ = grpcSrv.Serve(lis)
	}()
	t.Cleanup(grpcSrv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	client := NewClient(cc)
	client.Timeout = 5 * time.Second
	return client
}

func TestMintService_RoundTrip(t *testing.T) {
	store := memledger.New()
	srv := &Server{
		Program:      mintverify.New(store),
		Store:        store,
		AllowAirdrop: true,
	}
	client := newTestClient(t, srv)

	admin, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	user, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	collectionMint, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	itemMint, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}

	for _, kp := range []*wallet.Keypair{admin, user} {
		balance, err := client.Airdrop(kp.Address(), 1_000_000_000)
		if err != nil {
			t.Fatalf("Airdrop: %v", err)
		}
		if balance != 1_000_000_000 {
			t.Fatalf("balance = %d", balance)
		}
	}

	initParams := mintverify.InitializeCollectionParams{
		CollectionMint: collectionMint.Address(),
		Seed:           "GEN1",
		Metadata: mintverify.CollectionMetadata{
			Name:                 "Genesis",
			Symbol:               "GEN",
			URI:                  "https://example.com/genesis.json",
			SellerFeeBasisPoints: 500,
		},
	}
	if err := initParams.Sign(admin, ""); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	initRes, err := client.InitializeCollection(initParams)
	if err != nil {
		t.Fatalf("InitializeCollection: %v", err)
	}
	if initRes.Authority.IsZero() {
		t.Fatalf("expected derived authority in result")
	}

	mintParams := mintverify.MintAndVerifyParams{
		ItemMint:       itemMint.Address(),
		CollectionMint: collectionMint.Address(),
		Seed:           "GEN1",
		Metadata: mintverify.ItemMetadata{
			Name:                 "Genesis #1",
			Symbol:               "GEN",
			URI:                  "https://example.com/genesis-1.json",
			SellerFeeBasisPoints: 500,
		},
	}
	if err := mintParams.Sign(user, ""); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mintRes, err := client.MintAndVerify(mintParams)
	if err != nil {
		t.Fatalf("MintAndVerify: %v", err)
	}
	if !mintRes.Verified {
		t.Fatalf("expected verified item")
	}

	record, err := client.GetMetadata(itemMint.Address())
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if record.Collection == nil || !record.Collection.Verified {
		t.Fatalf("fetched record not verified: %+v", record.Collection)
	}
	if record.Data.Name != "Genesis #1" {
		t.Fatalf("fetched record name = %q", record.Data.Name)
	}
}

func TestMintService_StatusCodes(t *testing.T) {
	store := memledger.New()
	srv := &Server{
		Program:      mintverify.New(store),
		Store:        store,
		AllowAirdrop: true,
	}
	client := newTestClient(t, srv)

	admin, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	user, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	collectionMint, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	for _, kp := range []*wallet.Keypair{admin, user} {
		if _, err := client.Airdrop(kp.Address(), 1_000_000_000); err != nil {
			t.Fatalf("Airdrop: %v", err)
		}
	}

	initParams := mintverify.InitializeCollectionParams{
		CollectionMint: collectionMint.Address(),
		Seed:           "GEN1",
		Metadata: mintverify.CollectionMetadata{
			Name:   "Genesis",
			Symbol: "GEN",
			URI:    "https://example.com/genesis.json",
		},
	}
	if err := initParams.Sign(admin, ""); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := client.InitializeCollection(initParams); err != nil {
		t.Fatalf("InitializeCollection: %v", err)
	}

	// Duplicate bootstrap surfaces as AlreadyExists.
	_, err = client.InitializeCollection(initParams)
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("duplicate bootstrap: got %v want AlreadyExists", err)
	}

	// Wrong seed surfaces as FailedPrecondition.
	itemMint, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	mintParams := mintverify.MintAndVerifyParams{
		ItemMint:       itemMint.Address(),
		CollectionMint: collectionMint.Address(),
		Seed:           "WRONG",
		Metadata: mintverify.ItemMetadata{
			Name:   "Genesis #1",
			Symbol: "GEN",
			URI:    "https://example.com/genesis-1.json",
		},
	}
	if err := mintParams.Sign(user, ""); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	_, err = client.MintAndVerify(mintParams)
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("wrong seed: got %v want FailedPrecondition", err)
	}

	// Tampered signer surfaces as PermissionDenied.
	mintParams.Seed = "GEN1"
	if err := mintParams.Sign(user, ""); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mintParams.User = admin.Address()
	_, err = client.MintAndVerify(mintParams)
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("tampered signer: got %v want PermissionDenied", err)
	}

	// Unknown mint surfaces as NotFound.
	_, err = client.GetMetadata(itemMint.Address())
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unknown mint: got %v want NotFound", err)
	}
}

func TestMintService_AirdropDisabled(t *testing.T) {
	store := memledger.New()
	srv := &Server{
		Program: mintverify.New(store),
		Store:   store,
	}
	client := newTestClient(t, srv)

	kp, err := wallet.NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	_, err = client.Airdrop(kp.Address(), 1)
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("got %v want PermissionDenied", err)
	}
}
