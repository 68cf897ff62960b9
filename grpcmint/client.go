package grpcmint

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/metadata"
	"xdao.co/mintverify/mintverify"
)

// Client is a typed wrapper over the Mint gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client MintClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewMintClient(cc), Timeout: 0}, nil
}

// NewClient wraps an existing connection, e.g. one dialed over bufconn.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewMintClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

func (c *Client) InitializeCollection(params mintverify.InitializeCollectionParams) (*mintverify.InitializeCollectionResult, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	req, err := marshalRequest(params)
	if err != nil {
		return nil, err
	}
	reply, err := c.client.InitializeCollection(ctx, req)
	if err != nil {
		return nil, err
	}
	var res mintverify.InitializeCollectionResult
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, fmt.Errorf("grpcmint: malformed reply: %w", err)
	}
	return &res, nil
}

func (c *Client) MintAndVerify(params mintverify.MintAndVerifyParams) (*mintverify.MintAndVerifyResult, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	req, err := marshalRequest(params)
	if err != nil {
		return nil, err
	}
	reply, err := c.client.MintAndVerify(ctx, req)
	if err != nil {
		return nil, err
	}
	var res mintverify.MintAndVerifyResult
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, fmt.Errorf("grpcmint: malformed reply: %w", err)
	}
	return &res, nil
}

func (c *Client) UpdateCollectionAuthority(params mintverify.UpdateCollectionAuthorityParams) (*mintverify.UpdateCollectionAuthorityResult, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	req, err := marshalRequest(params)
	if err != nil {
		return nil, err
	}
	reply, err := c.client.UpdateCollectionAuthority(ctx, req)
	if err != nil {
		return nil, err
	}
	var res mintverify.UpdateCollectionAuthorityResult
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, fmt.Errorf("grpcmint: malformed reply: %w", err)
	}
	return &res, nil
}

// GetMetadata fetches the descriptive record for a mint.
func (c *Client) GetMetadata(mint addr.Address) (*metadata.Record, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.GetMetadata(ctx, wrapperspb.String(mint.String()))
	if err != nil {
		return nil, err
	}
	var record metadata.Record
	if err := json.Unmarshal(reply.GetValue(), &record); err != nil {
		return nil, fmt.Errorf("grpcmint: malformed reply: %w", err)
	}
	return &record, nil
}

// Airdrop funds an address on a development ledger and returns the new
// balance.
func (c *Client) Airdrop(address addr.Address, amount uint64) (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	req, err := marshalRequest(AirdropRequest{Address: address, Amount: amount})
	if err != nil {
		return 0, err
	}
	reply, err := c.client.Airdrop(ctx, req)
	if err != nil {
		return 0, err
	}
	var res AirdropReply
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return 0, fmt.Errorf("grpcmint: malformed reply: %w", err)
	}
	return res.Balance, nil
}

func marshalRequest(v any) (*wrapperspb.BytesValue, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("grpcmint: encoding request: %w", err)
	}
	return wrapperspb.Bytes(raw), nil
}
