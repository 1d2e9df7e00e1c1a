package http

import (
	"context"

	"github.com/example/mindease/internal/application"
)

type contextKey string

const (
	principalContextKey    contextKey = "principal"
	counsellorIDContextKey contextKey = "counsellor_id"
	resourceIDContextKey   contextKey = "resource_id"
	entryIDContextKey      contextKey = "entry_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithCounsellorID injects the counsellor identifier resolved from the request path.
func ContextWithCounsellorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, counsellorIDContextKey, id)
}

// CounsellorIDFromContext extracts a counsellor identifier previously associated with the context.
func CounsellorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(counsellorIDContextKey).(string)
	return id, ok
}

// ContextWithResourceID injects the resource identifier resolved from the request path.
func ContextWithResourceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, resourceIDContextKey, id)
}

// ResourceIDFromContext extracts a resource identifier previously associated with the context.
func ResourceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(resourceIDContextKey).(string)
	return id, ok
}

// ContextWithEntryID injects the journal entry identifier resolved from the request path.
func ContextWithEntryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, entryIDContextKey, id)
}

// EntryIDFromContext extracts a journal entry identifier previously associated with the context.
func EntryIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(entryIDContextKey).(string)
	return id, ok
}
