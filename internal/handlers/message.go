package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

func CreateMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type AddMessageRequest struct {
		ChannelID int64  `json:"channelID"`
		Body      string `json:"body"`
	}

	var messageRequest AddMessageRequest
	err := json.NewDecoder(r.Body).Decode(&messageRequest)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	channel := st.ChannelByID(messageRequest.ChannelID)
	if channel == nil {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	if !st.IsMember(channel, user) {
		http.Error(w, "You are not a member of this channel", http.StatusForbidden)
		return
	}

	msg := st.PostMessage(channel, user, messageRequest.Body, time.Now().Unix())
	if msg == nil {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	respondJSON(w, st.MessageSnapshotByID(msg.ID))
}

func GetMessageList(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	channel := channelFromQuery(w, r)
	if channel == nil {
		return
	}

	if !st.IsMember(channel, user) {
		http.Error(w, "You are not a member of this channel", http.StatusForbidden)
		return
	}

	respondJSON(w, st.MessagesSnapshot(channel))
}

func messageIDFromQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	messageID, err := strconv.ParseInt(r.URL.Query().Get("messageID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return 0, false
	}
	return messageID, true
}

func PinMessage(w http.ResponseWriter, r *http.Request) {
	messageID, ok := messageIDFromQuery(w, r)
	if !ok {
		return
	}

	if err := st.Pin(messageID); err != nil {
		sugar.Debug(err)
		storeError(w, err)
	}
}

func UnpinMessage(w http.ResponseWriter, r *http.Request) {
	messageID, ok := messageIDFromQuery(w, r)
	if !ok {
		return
	}

	if err := st.Unpin(messageID); err != nil {
		sugar.Debug(err)
		storeError(w, err)
	}
}

func ReactMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type ReactRequest struct {
		MessageID int64 `json:"messageID"`
		ReactID   int64 `json:"reactID"`
	}

	var request ReactRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	if err := st.AddReact(request.MessageID, user, request.ReactID); err != nil {
		sugar.Debug(err)
		storeError(w, err)
	}
}

func UnreactMessage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	type ReactRequest struct {
		MessageID int64 `json:"messageID"`
		ReactID   int64 `json:"reactID"`
	}

	var request ReactRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	if err := st.RemoveReact(request.MessageID, user, request.ReactID); err != nil {
		sugar.Debug(err)
		storeError(w, err)
	}
}
