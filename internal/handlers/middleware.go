package handlers

import (
	"context"
	"errors"
	"net/http"
)

// UserVerifier resolves the session token cookie to a user and passes
// it to the next handler via the request context. The store absorbs
// every decode failure into a nil user, so from here any bad token is
// simply unauthorized.
func UserVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCookie, err := r.Cookie("token")
		if err != nil {
			sugar.Debug(err)
			switch {
			case errors.Is(err, http.ErrNoCookie):
				http.Error(w, "No token cookie was provided", http.StatusUnauthorized)
			default:
				http.Error(w, "Couldn't read token cookie", http.StatusInternalServerError)
			}
			return
		}

		user := st.Authenticate(tokenCookie.Value)
		if user == nil {
			http.Error(w, "Invalid session", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKeyType{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
