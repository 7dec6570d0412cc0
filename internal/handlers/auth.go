package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatcore-backend/internal/email"

	playgroundValidator "github.com/go-playground/validator/v10"
)

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func Register(w http.ResponseWriter, r *http.Request) {
	var registerErrors = make(map[string]string)

	type Registration struct {
		Email     string `json:"email" validate:"required"`
		Password  string `json:"password" validate:"required,min=6"`
		NameFirst string `json:"nameFirst" validate:"required,max=50"`
		NameLast  string `json:"nameLast" validate:"required,max=50"`
	}

	var registration Registration
	err := json.NewDecoder(r.Body).Decode(&registration)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	err = validate.Struct(registration)
	if err != nil {
		var validateErrs playgroundValidator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, e := range validateErrs {
				registerErrors[e.Field()] = e.Tag()
			}
		} else {
			sugar.Error(err)
			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		// sends back 400 with the form field errors
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(registerErrors)
		if encodeErr != nil {
			sugar.Error(encodeErr)
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	user, err := st.Register(registration.Email, registration.Password, registration.NameFirst, registration.NameLast)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}

	setTokenCookie(w, user.Token)
	respondJSON(w, st.UserSnapshot(user))
}

func Login(w http.ResponseWriter, r *http.Request) {
	type Login struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var login Login
	err := json.NewDecoder(r.Body).Decode(&login)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	user := st.UserByEmail(login.Email)
	if user == nil || !st.VerifyPassword(user, login.Password) {
		http.Error(w, "", http.StatusUnauthorized)
		return
	}

	token, err := st.IssueToken(user)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	setTokenCookie(w, token)
	respondJSON(w, st.UserSnapshot(user))
}

func Logout(w http.ResponseWriter, r *http.Request) {
	st.RevokeToken(currentUser(r))

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	type ResetRequest struct {
		Email string `json:"email"`
	}

	var request ResetRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	code, err := st.RequestPasswordReset(request.Email)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}

	user := st.UserSnapshot(st.UserByEmail(request.Email))

	err = email.SendResetCode(request.Email, user.Handle, code)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func PasswordReset(w http.ResponseWriter, r *http.Request) {
	type Reset struct {
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}

	var reset Reset
	err := json.NewDecoder(r.Body).Decode(&reset)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	err = st.ResetPassword(reset.Code, reset.NewPassword)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}
}
