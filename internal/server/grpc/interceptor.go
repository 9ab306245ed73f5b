package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
)

// publicPrefixes lists method prefixes reachable without a token.
var publicPrefixes = []string{
	"/grpc.health.v1.Health/",
}

func isPublicMethod(fullMethod string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(fullMethod, p) {
			return true
		}
	}
	return false
}

// tokenFromMetadata reads "authorization: Bearer <token>". Anything else
// yields "".
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	return common.BearerToken(values[0])
}

func (s *GRPCServer) authenticate(ctx context.Context) (context.Context, error) {
	session := s.resolver.Resolve(ctx, tokenFromMetadata(ctx))

	outcome := session.State.String()
	if session.State == auth.StateRejected {
		outcome = session.Reason
	}
	if s.metrics != nil {
		s.metrics.ObserveResolution(outcome)
	}

	if session.State != auth.StateResolved || session.User == nil {
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	}
	return auth.ContextWithUser(ctx, session.User), nil
}

func (s *GRPCServer) authUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if isPublicMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	ctx, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authedStream) Context() context.Context { return s.ctx }

func (s *GRPCServer) authStreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if isPublicMethod(info.FullMethod) {
		return handler(srv, ss)
	}

	ctx, err := s.authenticate(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &authedStream{ServerStream: ss, ctx: ctx})
}
