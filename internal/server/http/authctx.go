package httpserver

import "context"

type ctxKey string

const userIDKey ctxKey = "cx.userID"

// AnonymousUserID is the deterministic fallback identity used when no
// session is present. Browsing, cart, and wishlist work anonymously;
// ledger decisions and checkout require a real session.
const AnonymousUserID = "user-1"

// WithUserID stores the authenticated user ID in the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx fetches the authenticated user ID from the context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CurrentUserID resolves the acting user's identifier. It never fails:
// without a session it returns AnonymousUserID.
func CurrentUserID(ctx context.Context) string {
	if id, ok := UserIDFromCtx(ctx); ok {
		return id
	}
	return AnonymousUserID
}
