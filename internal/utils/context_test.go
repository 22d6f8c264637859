package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "ownerID", OwnerIDCtxKey.String())
}

func TestGetOwnerIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   string
		wantOK bool
	}{
		{"present", context.WithValue(context.Background(), OwnerIDCtxKey, "u1"), "u1", true},
		{"missing", context.Background(), "", false},
		{"wrong type", context.WithValue(context.Background(), OwnerIDCtxKey, int64(1)), "", false},
		{"empty", context.WithValue(context.Background(), OwnerIDCtxKey, ""), "", false},
		{"plain string key", context.WithValue(context.Background(), "ownerID", "u1"), "", false}, //nolint:staticcheck
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetOwnerIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
