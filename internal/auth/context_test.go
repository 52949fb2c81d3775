package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestGetMerchantID(t *testing.T) {
	assert.Empty(t, GetMerchantID(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("X-Merchant-ID", "m-meta"))
	assert.Equal(t, "m-meta", GetMerchantID(ctx))

	ctx = WithMerchantID(ctx, "m-ctx")
	assert.Equal(t, "m-ctx", GetMerchantID(ctx))
}
