// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyDataset ctxKey = "dataset"

// WithRequest stores reqID where chimw.GetReqID finds it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// WithDataset tags ctx with the dataset a report request reads
func WithDataset(ctx context.Context, dataset string) context.Context {
	if dataset != "" {
		ctx = context.WithValue(ctx, keyDataset, dataset)
	}
	return ctx
}

// Dataset returns the dataset tag on the context if present
func Dataset(ctx context.Context) string {
	if v, ok := ctx.Value(keyDataset).(string); ok {
		return v
	}
	return ""
}
