package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatcore-backend/internal/models"
	"chatcore-backend/internal/store"
)

type userKeyType struct{}

func currentUser(r *http.Request) *models.User {
	return r.Context().Value(userKeyType{}).(*models.User)
}

func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func storeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), storeErrorStatus(err))
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
	}
}
