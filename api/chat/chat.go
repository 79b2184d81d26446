package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"VyaparDash/api"
	"VyaparDash/api/constants"
	chatcore "VyaparDash/internal/chat"
)

// PostChat handles POST /api/chat. The responder is injected so the rule
// table can be swapped for a real language backend without touching this
// handler.
func PostChat(responder chatcore.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMessageRequired)
			return
		}

		reply, err := responder.Respond(r.Context(), api.OwnerID(r), req.Message)
		if err != nil {
			api.LogError("chat respond: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrChatFailed)
			return
		}
		api.RespondWithJSON(w, map[string]interface{}{
			"message": reply.Message,
			"data":    reply.Data,
		})
	}
}
