package grpcmint

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/metadata"
	"xdao.co/mintverify/mintverify"
)

// AirdropRequest funds an address out of thin air. Development ledgers only;
// the server rejects it unless AllowAirdrop is set.
type AirdropRequest struct {
	Address addr.Address `json:"address"`
	Amount  uint64       `json:"amount"`
}

// AirdropReply reports the funded address's new balance.
type AirdropReply struct {
	Address addr.Address `json:"address"`
	Balance uint64       `json:"balance"`
}

// Server exposes a mintverify.Program over the Mint gRPC service.
type Server struct {
	UnimplementedMintServer

	Program *mintverify.Program
	Store   ledger.Store
	Log     *zap.Logger

	// AllowAirdrop enables the Airdrop method. Leave unset outside
	// development deployments.
	AllowAirdrop bool
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) InitializeCollection(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Program == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing program")
	}
	var params mintverify.InitializeCollectionParams
	if err := json.Unmarshal(in.GetValue(), &params); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request body")
	}
	res, err := s.Program.InitializeCollection(ctx, params)
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(res)
}

func (s *Server) MintAndVerify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Program == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing program")
	}
	var params mintverify.MintAndVerifyParams
	if err := json.Unmarshal(in.GetValue(), &params); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request body")
	}
	res, err := s.Program.MintAndVerify(ctx, params)
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(res)
}

func (s *Server) UpdateCollectionAuthority(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Program == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing program")
	}
	var params mintverify.UpdateCollectionAuthorityParams
	if err := json.Unmarshal(in.GetValue(), &params); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request body")
	}
	res, err := s.Program.UpdateCollectionAuthority(ctx, params)
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(res)
}

// GetMetadata resolves a mint address to its descriptive record.
func (s *Server) GetMetadata(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing store")
	}
	mint, err := addr.Parse(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed mint address")
	}
	recordAddr, err := metadata.RecordAddress(mint)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	var record metadata.Record
	err = s.Store.View(ctx, func(tx ledger.Tx) error {
		record, err = metadata.Get(tx, recordAddr)
		return err
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(record)
}

func (s *Server) Airdrop(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing store")
	}
	if !s.AllowAirdrop {
		return nil, status.Error(codes.PermissionDenied, "airdrops are disabled on this ledger")
	}
	var req AirdropRequest
	if err := json.Unmarshal(in.GetValue(), &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request body")
	}
	if req.Address.IsZero() || req.Amount == 0 {
		return nil, status.Error(codes.InvalidArgument, "airdrop requires an address and a nonzero amount")
	}
	reply := AirdropReply{Address: req.Address}
	err := s.Store.Update(ctx, func(tx ledger.Tx) error {
		if err := tx.Credit(req.Address, req.Amount); err != nil {
			return err
		}
		acct, err := tx.Get(req.Address)
		if err != nil {
			return err
		}
		reply.Balance = acct.Balance
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	s.logger().Info("airdrop",
		zap.String("address", req.Address.String()),
		zap.Uint64("amount", req.Amount),
	)
	return marshalReply(reply)
}

func marshalReply(v any) (*wrapperspb.BytesValue, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "reply encoding failed")
	}
	return wrapperspb.Bytes(raw), nil
}

// mapErr folds program and ledger errors onto gRPC status codes. The error
// message carries the stable program code when one exists, so clients can
// branch without string matching.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if code := mintverify.Code(err); code != "" {
		msg = code + ": " + msg
	}
	switch {
	case mintverify.IsKind(err, mintverify.KindUnauthorized):
		return status.Error(codes.PermissionDenied, msg)
	case mintverify.IsKind(err, mintverify.KindInvalidCollectionSeed),
		mintverify.IsKind(err, mintverify.KindMetadataCreationFailed):
		return status.Error(codes.InvalidArgument, msg)
	case mintverify.IsKind(err, mintverify.KindVerificationFailed),
		mintverify.IsKind(err, mintverify.KindInvalidCollectionAuthority),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return status.Error(codes.FailedPrecondition, msg)
	case ledger.IsAddressInUse(err):
		return status.Error(codes.AlreadyExists, msg)
	case ledger.IsNotFound(err):
		return status.Error(codes.NotFound, msg)
	default:
		return status.Error(codes.Internal, msg)
	}
}
