package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"chatcore-backend/internal/models"
)

// channelFromQuery resolves the channelID query parameter. A nil
// return means the response has already been written.
func channelFromQuery(w http.ResponseWriter, r *http.Request) *models.Channel {
	channelID, err := strconv.ParseInt(r.URL.Query().Get("channelID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid channel ID", http.StatusBadRequest)
		return nil
	}

	channel := st.ChannelByID(channelID)
	if channel == nil {
		http.Error(w, "", http.StatusNotFound)
		return nil
	}
	return channel
}

func CreateChannel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type CreateRequest struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"isPublic"`
	}

	var request CreateRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	channel, err := st.CreateChannel(user, request.Name, request.IsPublic)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}

	respondJSON(w, st.ChannelSnapshot(channel))
}

func GetChannel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	if !st.IsMember(channel, user) {
		http.Error(w, "You are not a member of this channel", http.StatusForbidden)
		return
	}

	respondJSON(w, st.ChannelSnapshot(channel))
}

func JoinChannel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	// private channels are invite-only, except for the elevated first user
	if !channel.IsPublic && user.PermissionID != 1 {
		http.Error(w, "This channel is private", http.StatusForbidden)
		return
	}

	st.AddMember(channel, user)
}

func LeaveChannel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	err := st.RemoveMember(channel, user)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}
}

func AddChannelOwner(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	target := userFromQuery(w, r)
	if target == nil {
		return
	}

	if !st.IsOwner(channel, user) {
		http.Error(w, "You don't own this channel", http.StatusForbidden)
		return
	}

	st.AddOwner(channel, target)
}

func RemoveChannelOwner(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	target := userFromQuery(w, r)
	if target == nil {
		return
	}

	if !st.IsOwner(channel, user) {
		http.Error(w, "You don't own this channel", http.StatusForbidden)
		return
	}

	err := st.RemoveOwner(channel, target)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}
}

func userFromQuery(w http.ResponseWriter, r *http.Request) *models.User {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return nil
	}

	target := st.UserByID(userID)
	if target == nil {
		http.Error(w, "", http.StatusNotFound)
		return nil
	}
	return target
}
