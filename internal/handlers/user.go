package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	paramUserID := r.URL.Query().Get("userID")
	if paramUserID == "" {
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	var requestedUserID int64

	if paramUserID == "self" {
		requestedUserID = user.ID
	} else {
		var err error
		requestedUserID, err = strconv.ParseInt(paramUserID, 10, 64)
		if err != nil {
			http.Error(w, "", http.StatusBadRequest)
			return
		}
	}

	requested := st.UserByID(requestedUserID)
	if requested == nil {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	respondJSON(w, st.UserSnapshot(requested))
}

func UpdateUserInfo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type Update struct {
		NameFirst     string `json:"nameFirst"`
		NameLast      string `json:"nameLast"`
		Email         string `json:"email"`
		Handle        string `json:"handle"`
		ProfileImgURL string `json:"profileImgURL"`
	}

	var update Update
	err := json.NewDecoder(r.Body).Decode(&update)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	if update.NameFirst != "" || update.NameLast != "" {
		nameFirst := update.NameFirst
		if nameFirst == "" {
			nameFirst = user.NameFirst
		}
		nameLast := update.NameLast
		if nameLast == "" {
			nameLast = user.NameLast
		}
		if err := st.SetNames(user, nameFirst, nameLast); err != nil {
			storeError(w, err)
			return
		}
	}

	if update.Email != "" {
		if err := st.SetEmail(user, update.Email); err != nil {
			storeError(w, err)
			return
		}
	}

	if update.Handle != "" {
		if err := st.SetHandle(user, update.Handle); err != nil {
			storeError(w, err)
			return
		}
	}

	if update.ProfileImgURL != "" {
		st.SetProfileImage(user, update.ProfileImgURL)
	}

	respondJSON(w, st.UserSnapshot(user))
}
