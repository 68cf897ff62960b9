package grpcmint

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// MintServer is the server API for the Mint gRPC service.
//
// Requests and replies are JSON documents carried in protobuf well-known
// wrapper types, so this package does not require a protoc/codegen toolchain.
//
// Proto definition: mint.proto.
type MintServer interface {
	InitializeCollection(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	MintAndVerify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	UpdateCollectionAuthority(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	GetMetadata(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Airdrop(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedMintServer can be embedded to have forward compatible implementations.
type UnimplementedMintServer struct{}

func (UnimplementedMintServer) InitializeCollection(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method InitializeCollection not implemented")
}
func (UnimplementedMintServer) MintAndVerify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method MintAndVerify not implemented")
}
func (UnimplementedMintServer) UpdateCollectionAuthority(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCollectionAuthority not implemented")
}
func (UnimplementedMintServer) GetMetadata(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMetadata not implemented")
}
func (UnimplementedMintServer) Airdrop(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Airdrop not implemented")
}

// RegisterMintServer registers the Mint service on a gRPC server.
func RegisterMintServer(s grpc.ServiceRegistrar, srv MintServer) {
	s.RegisterService(&Mint_ServiceDesc, srv)
}

// MintClient is the client API for the Mint gRPC service.
type MintClient interface {
	InitializeCollection(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	MintAndVerify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	UpdateCollectionAuthority(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	GetMetadata(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Airdrop(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type mintClient struct{ cc grpc.ClientConnInterface }

func NewMintClient(cc grpc.ClientConnInterface) MintClient { return &mintClient{cc: cc} }

func (c *mintClient) InitializeCollection(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.mintverify.rpc.v1.Mint/InitializeCollection", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mintClient) MintAndVerify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.mintverify.rpc.v1.Mint/MintAndVerify", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mintClient) UpdateCollectionAuthority(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.mintverify.rpc.v1.Mint/UpdateCollectionAuthority", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mintClient) GetMetadata(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.mintverify.rpc.v1.Mint/GetMetadata", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mintClient) Airdrop(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.mintverify.rpc.v1.Mint/Airdrop", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Mint_InitializeCollection_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MintServer).InitializeCollection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.mintverify.rpc.v1.Mint/InitializeCollection"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MintServer).InitializeCollection(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Mint_MintAndVerify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MintServer).MintAndVerify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.mintverify.rpc.v1.Mint/MintAndVerify"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MintServer).MintAndVerify(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Mint_UpdateCollectionAuthority_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MintServer).UpdateCollectionAuthority(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.mintverify.rpc.v1.Mint/UpdateCollectionAuthority"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MintServer).UpdateCollectionAuthority(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Mint_GetMetadata_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MintServer).GetMetadata(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.mintverify.rpc.v1.Mint/GetMetadata"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MintServer).GetMetadata(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Mint_Airdrop_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MintServer).Airdrop(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.mintverify.rpc.v1.Mint/Airdrop"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MintServer).Airdrop(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Mint_ServiceDesc is the grpc.ServiceDesc for the Mint service.
var Mint_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.mintverify.rpc.v1.Mint",
	HandlerType: (*MintServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "InitializeCollection", Handler: _Mint_InitializeCollection_Handler},
		{MethodName: "MintAndVerify", Handler: _Mint_MintAndVerify_Handler},
		{MethodName: "UpdateCollectionAuthority", Handler: _Mint_UpdateCollectionAuthority_Handler},
		{MethodName: "GetMetadata", Handler: _Mint_GetMetadata_Handler},
		{MethodName: "Airdrop", Handler: _Mint_Airdrop_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mint.proto",
}
