package server

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	SessionServiceName = "warzone.v1.SessionService"

	GetSessionProcedure = "/" + SessionServiceName + "/GetSession"
	LoginProcedure      = "/" + SessionServiceName + "/Login"
)

// sessionHandlers exposes login and session state as connect RPCs built on
// protobuf well-known types, alongside the JSON routes.
func (s *TrackerServer) sessionHandlers() map[string]http.Handler {
	return map[string]http.Handler{
		GetSessionProcedure: connect.NewUnaryHandler(GetSessionProcedure, s.GetSessionRPC),
		LoginProcedure:      connect.NewUnaryHandler(LoginProcedure, s.LoginRPC),
	}
}

func (s *TrackerServer) GetSessionRPC(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.BoolValue], error) {
	return connect.NewResponse(wrapperspb.Bool(s.authSvc.LoggedIn())), nil
}

// LoginRPC takes a struct with string fields email and password. A rejected
// login is a false value, not an error.
func (s *TrackerServer) LoginRPC(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[wrapperspb.BoolValue], error) {
	fields := req.Msg.GetFields()
	email := fields["email"].GetStringValue()
	password := fields["password"].GetStringValue()
	if email == "" || password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email and password are required"))
	}

	return connect.NewResponse(wrapperspb.Bool(s.authSvc.Login(ctx, email, password))), nil
}
