// internal/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const documentIDKey contextKey = "document_id"

// DocumentMiddleware resolves an optional bearer token to a document id.
// Requests without a token pass through; a bad token is rejected.
func DocumentMiddleware(s *Service, onError func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
				onError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			documentID, err := s.Parse(bearerToken[1])
			if err != nil {
				onError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := WithDocumentID(r.Context(), documentID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithDocumentID(ctx context.Context, documentID string) context.Context {
	return context.WithValue(ctx, documentIDKey, documentID)
}

func DocumentIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(documentIDKey).(string)
	return id, ok && id != ""
}
