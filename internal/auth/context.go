package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// MerchantHeader carries the caller's merchant as gRPC metadata and as an
// HTTP header.
const MerchantHeader = "x-merchant-id"

type contextKey struct{}

// WithMerchantID returns a copy of ctx scoped to merchantID.
func WithMerchantID(ctx context.Context, merchantID string) context.Context {
	return context.WithValue(ctx, contextKey{}, merchantID)
}

// GetMerchantID returns the merchant set by the interceptor or gateway,
// falling back to incoming metadata. Empty when the caller sent none.
func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(contextKey{}).(string); ok && val != "" {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(MerchantHeader); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
