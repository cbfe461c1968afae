package walletv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gowallet.v1.WalletService"

const (
	WalletService_CreateWallet_FullMethodName         = "/" + ServiceName + "/CreateWallet"
	WalletService_GetWallet_FullMethodName            = "/" + ServiceName + "/GetWallet"
	WalletService_GetBalance_FullMethodName           = "/" + ServiceName + "/GetBalance"
	WalletService_GetHistoricalBalance_FullMethodName = "/" + ServiceName + "/GetHistoricalBalance"
	WalletService_Deposit_FullMethodName              = "/" + ServiceName + "/Deposit"
	WalletService_Withdraw_FullMethodName             = "/" + ServiceName + "/Withdraw"
	WalletService_Transfer_FullMethodName             = "/" + ServiceName + "/Transfer"
	WalletService_ListTransactions_FullMethodName     = "/" + ServiceName + "/ListTransactions"
)

// WalletServiceServer is the server API for WalletService.
type WalletServiceServer interface {
	CreateWallet(context.Context, *CreateWalletRequest) (*CreateWalletResponse, error)
	GetWallet(context.Context, *GetWalletRequest) (*GetWalletResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	GetHistoricalBalance(context.Context, *GetHistoricalBalanceRequest) (*GetHistoricalBalanceResponse, error)
	Deposit(context.Context, *DepositRequest) (*TransactionResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*TransactionResponse, error)
	Transfer(context.Context, *TransferRequest) (*TransactionResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
}

// UnimplementedWalletServiceServer answers every method with codes.Unimplemented.
type UnimplementedWalletServiceServer struct{}

func (UnimplementedWalletServiceServer) CreateWallet(context.Context, *CreateWalletRequest) (*CreateWalletResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateWallet not implemented")
}

func (UnimplementedWalletServiceServer) GetWallet(context.Context, *GetWalletRequest) (*GetWalletResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetWallet not implemented")
}

func (UnimplementedWalletServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}

func (UnimplementedWalletServiceServer) GetHistoricalBalance(context.Context, *GetHistoricalBalanceRequest) (*GetHistoricalBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetHistoricalBalance not implemented")
}

func (UnimplementedWalletServiceServer) Deposit(context.Context, *DepositRequest) (*TransactionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Deposit not implemented")
}

func (UnimplementedWalletServiceServer) Withdraw(context.Context, *WithdrawRequest) (*TransactionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Withdraw not implemented")
}

func (UnimplementedWalletServiceServer) Transfer(context.Context, *TransferRequest) (*TransactionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Transfer not implemented")
}

func (UnimplementedWalletServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTransactions not implemented")
}

// RegisterWalletServiceServer registers srv on s.
func RegisterWalletServiceServer(s grpc.ServiceRegistrar, srv WalletServiceServer) {
	s.RegisterService(&WalletService_ServiceDesc, srv)
}

// unary builds the method handler for one RPC.
func unary[Req any, Resp any](fullMethod string, call func(WalletServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WalletServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(WalletServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// WalletService_ServiceDesc is the grpc.ServiceDesc for WalletService.
var WalletService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WalletServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateWallet", Handler: unary(WalletService_CreateWallet_FullMethodName, WalletServiceServer.CreateWallet)},
		{MethodName: "GetWallet", Handler: unary(WalletService_GetWallet_FullMethodName, WalletServiceServer.GetWallet)},
		{MethodName: "GetBalance", Handler: unary(WalletService_GetBalance_FullMethodName, WalletServiceServer.GetBalance)},
		{MethodName: "GetHistoricalBalance", Handler: unary(WalletService_GetHistoricalBalance_FullMethodName, WalletServiceServer.GetHistoricalBalance)},
		{MethodName: "Deposit", Handler: unary(WalletService_Deposit_FullMethodName, WalletServiceServer.Deposit)},
		{MethodName: "Withdraw", Handler: unary(WalletService_Withdraw_FullMethodName, WalletServiceServer.Withdraw)},
		{MethodName: "Transfer", Handler: unary(WalletService_Transfer_FullMethodName, WalletServiceServer.Transfer)},
		{MethodName: "ListTransactions", Handler: unary(WalletService_ListTransactions_FullMethodName, WalletServiceServer.ListTransactions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gowallet/v1/wallet.proto",
}

// WalletServiceClient is the client API for WalletService.
type WalletServiceClient interface {
	CreateWallet(ctx context.Context, in *CreateWalletRequest, opts ...grpc.CallOption) (*CreateWalletResponse, error)
	GetWallet(ctx context.Context, in *GetWalletRequest, opts ...grpc.CallOption) (*GetWalletResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	GetHistoricalBalance(ctx context.Context, in *GetHistoricalBalanceRequest, opts ...grpc.CallOption) (*GetHistoricalBalanceResponse, error)
	Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*TransactionResponse, error)
	Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*TransactionResponse, error)
	Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*TransactionResponse, error)
	ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error)
}

type walletServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewWalletServiceClient creates a client that speaks the JSON codec.
func NewWalletServiceClient(cc grpc.ClientConnInterface) WalletServiceClient {
	return &walletServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *walletServiceClient) CreateWallet(ctx context.Context, in *CreateWalletRequest, opts ...grpc.CallOption) (*CreateWalletResponse, error) {
	return invoke[CreateWalletResponse](ctx, c.cc, WalletService_CreateWallet_FullMethodName, in, opts)
}

func (c *walletServiceClient) GetWallet(ctx context.Context, in *GetWalletRequest, opts ...grpc.CallOption) (*GetWalletResponse, error) {
	return invoke[GetWalletResponse](ctx, c.cc, WalletService_GetWallet_FullMethodName, in, opts)
}

func (c *walletServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, WalletService_GetBalance_FullMethodName, in, opts)
}

func (c *walletServiceClient) GetHistoricalBalance(ctx context.Context, in *GetHistoricalBalanceRequest, opts ...grpc.CallOption) (*GetHistoricalBalanceResponse, error) {
	return invoke[GetHistoricalBalanceResponse](ctx, c.cc, WalletService_GetHistoricalBalance_FullMethodName, in, opts)
}

func (c *walletServiceClient) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, WalletService_Deposit_FullMethodName, in, opts)
}

func (c *walletServiceClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, WalletService_Withdraw_FullMethodName, in, opts)
}

func (c *walletServiceClient) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, WalletService_Transfer_FullMethodName, in, opts)
}

func (c *walletServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsResponse](ctx, c.cc, WalletService_ListTransactions_FullMethodName, in, opts)
}
