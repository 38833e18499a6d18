package grpc

// proto.go defines the gRPC server interface derived from
// aeroxpay/credit/v1/credit.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/aeroxpay/api/gen/go/aeroxpay/credit/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aeroxpay/credit-service/internal/application/dto"
)

// ProcessBookingRequest mirrors aeroxpay.credit.v1.ProcessBookingRequest.
// Amounts travel as decimal strings.
type ProcessBookingRequest struct {
	CompanyId          string `json:"company_id"`
	CompanyName        string `json:"company_name,omitempty"`
	BookingAmount      string `json:"booking_amount"`
	CurrentOutstanding string `json:"current_outstanding"`
	CreditLimit        string `json:"credit_limit"`
	Route              string `json:"route,omitempty"`
	SettlementDays     int32  `json:"settlement_days,omitempty"`
}

// ProcessBookingResponse mirrors aeroxpay.credit.v1.ProcessBookingResponse.
type ProcessBookingResponse struct {
	Result dto.DecisionResponse `json:"result"`
}

// NegotiateRequest mirrors aeroxpay.credit.v1.NegotiateRequest.
type NegotiateRequest struct {
	CompanyId       string                `json:"company_id"`
	CustomerMessage string                `json:"customer_message"`
	Booking         ProcessBookingRequest `json:"booking_request"`
	Scores          dto.ScoresResponse    `json:"risk_scores"`
	InitialOptions  []dto.OptionResponse  `json:"initial_options,omitempty"`
}

// NegotiateResponse mirrors aeroxpay.credit.v1.NegotiateResponse.
type NegotiateResponse struct {
	Result dto.NegotiationTurnResponse `json:"result"`
}

// ResetSessionRequest mirrors aeroxpay.credit.v1.ResetSessionRequest.
type ResetSessionRequest struct {
	CompanyId string `json:"company_id"`
}

// ResetSessionResponse mirrors aeroxpay.credit.v1.ResetSessionResponse.
type ResetSessionResponse struct {
	CompanyId string `json:"company_id"`
}

// CreditDecisionServiceServer is the server API for CreditDecisionService.
// It mirrors the proto-generated interface from aeroxpay.credit.v1.CreditDecisionService.
type CreditDecisionServiceServer interface {
	ProcessBooking(context.Context, *ProcessBookingRequest) (*ProcessBookingResponse, error)
	Negotiate(context.Context, *NegotiateRequest) (*NegotiateResponse, error)
	ResetSession(context.Context, *ResetSessionRequest) (*ResetSessionResponse, error)
	mustEmbedUnimplementedCreditDecisionServiceServer()
}

// UnimplementedCreditDecisionServiceServer provides forward-compatible default implementations.
type UnimplementedCreditDecisionServiceServer struct{}

func (UnimplementedCreditDecisionServiceServer) ProcessBooking(context.Context, *ProcessBookingRequest) (*ProcessBookingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ProcessBooking not implemented")
}
func (UnimplementedCreditDecisionServiceServer) Negotiate(context.Context, *NegotiateRequest) (*NegotiateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Negotiate not implemented")
}
func (UnimplementedCreditDecisionServiceServer) ResetSession(context.Context, *ResetSessionRequest) (*ResetSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetSession not implemented")
}
func (UnimplementedCreditDecisionServiceServer) mustEmbedUnimplementedCreditDecisionServiceServer() {}

// RegisterCreditDecisionServiceServer registers the server with the gRPC server.
func RegisterCreditDecisionServiceServer(s *grpclib.Server, srv CreditDecisionServiceServer) {
	s.RegisterService(&_CreditDecisionService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditDecisionService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "aeroxpay.credit.v1.CreditDecisionService",
	HandlerType: (*CreditDecisionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ProcessBooking", Handler: _CreditDecisionService_ProcessBooking_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "Negotiate", Handler: _CreditDecisionService_Negotiate_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "ResetSession", Handler: _CreditDecisionService_ResetSession_Handler},     //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditDecisionService_ProcessBooking_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProcessBookingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditDecisionServiceServer).ProcessBooking(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aeroxpay.credit.v1.CreditDecisionService/ProcessBooking",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditDecisionServiceServer).ProcessBooking(ctx, req.(*ProcessBookingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditDecisionService_Negotiate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(NegotiateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditDecisionServiceServer).Negotiate(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aeroxpay.credit.v1.CreditDecisionService/Negotiate",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditDecisionServiceServer).Negotiate(ctx, req.(*NegotiateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditDecisionService_ResetSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResetSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditDecisionServiceServer).ResetSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/aeroxpay.credit.v1.CreditDecisionService/ResetSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditDecisionServiceServer).ResetSession(ctx, req.(*ResetSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}
