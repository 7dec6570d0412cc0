package handlers

import (
	"encoding/json"
	"net/http"

	"chatcore-backend/internal/hub"
)

func StartStandup(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type StartRequest struct {
		ChannelID int64 `json:"channelID"`
		Length    int64 `json:"length"`
	}

	var request StartRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	channel := st.ChannelByID(request.ChannelID)
	if channel == nil {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	if !st.IsMember(channel, user) {
		http.Error(w, "You are not a member of this channel", http.StatusForbidden)
		return
	}

	timeFinish, err := st.StartStandup(channel, user, request.Length)
	if err != nil {
		sugar.Debug(err)
		storeError(w, err)
		return
	}

	err = ws.Emit(hub.StandupStarted, channel.ID, map[string]int64{"timeFinish": timeFinish})
	if err != nil {
		sugar.Error(err)
	}

	respondJSON(w, map[string]int64{"timeFinish": timeFinish})
}

func SendStandup(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type SendRequest struct {
		ChannelID int64  `json:"channelID"`
		Body      string `json:"body"`
	}

	var request SendRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	channel := st.ChannelByID(request.ChannelID)
	if channel == nil {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	if !st.IsMember(channel, user) {
		http.Error(w, "You are not a member of this channel", http.StatusForbidden)
		return
	}

	if err := st.EnqueueStandup(channel, user, request.Body); err != nil {
		sugar.Debug(err)
		storeError(w, err)
	}
}

func GetStandupStatus(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	if !st.IsMember(channel, user) {
		http.Error(w, "You are not a member of this channel", http.StatusForbidden)
		return
	}

	isActive, timeFinish := st.StandupActive(channel)

	respondJSON(w, map[string]any{
		"isActive":   isActive,
		"timeFinish": timeFinish,
	})
}
