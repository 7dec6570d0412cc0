package handlers

import "net/http"

func HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws.HandleClient(currentUser(r), w, r)
}
