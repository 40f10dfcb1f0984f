package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/medikeep/cabinet-backend/internal/domain"
	"github.com/medikeep/cabinet-backend/internal/service/inventory"
)

type messageService interface {
	HandleMessage(ctx context.Context, in inventory.MessageInput) inventory.Result
}

// MessagesHandler serves the chat message endpoint.
type MessagesHandler struct {
	svc messageService
	log *slog.Logger
}

// NewMessagesHandler creates a MessagesHandler.
func NewMessagesHandler(svc messageService, logger *slog.Logger) *MessagesHandler {
	return &MessagesHandler{
		svc: svc,
		log: logger.With("handler", "messages"),
	}
}

type actorRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type messageRequest struct {
	GroupID string       `json:"group_id"`
	Actor   actorRequest `json:"actor"`
	Text    string       `json:"text"`
}

type medicineJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Unit        string     `json:"unit"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	AddedByName string     `json:"added_by_name,omitempty"`
	Confidence  int        `json:"confidence,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
}

type messageResponse struct {
	Status   string           `json:"status"`
	Intent   string           `json:"intent"`
	Medicine *medicineJSON    `json:"medicine,omitempty"`
	Cabinet  []medicineJSON   `json:"cabinet,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Kind     string           `json:"error_kind,omitempty"`
	Fields   []fieldErrorJSON `json:"fields,omitempty"`
}

// Handle processes one chat message end to end.
// POST /v1/messages
func (h *MessagesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res := h.svc.HandleMessage(r.Context(), inventory.MessageInput{
		GroupID: req.GroupID,
		Actor:   domain.Actor{ID: req.Actor.ID, DisplayName: req.Actor.DisplayName},
		Text:    req.Text,
	})

	writeJSON(w, http.StatusOK, toMessageResponse(res))
}

func toMessageResponse(res inventory.Result) messageResponse {
	out := messageResponse{
		Status:   res.Status.String(),
		Intent:   res.Intent.String(),
		Warnings: warningStrings(res.Warnings),
		Kind:     res.ErrorKind.String(),
	}
	if res.Medicine != nil {
		mv := toMedicineJSON(*res.Medicine)
		out.Medicine = &mv
	}
	for _, mv := range res.Cabinet {
		out.Cabinet = append(out.Cabinet, toMedicineJSON(mv))
	}
	for _, fe := range res.Errors {
		out.Fields = append(out.Fields, fieldErrorJSON{Field: fe.Field, Message: fe.Message})
	}
	return out
}

func toMedicineJSON(mv inventory.MedicineView) medicineJSON {
	return medicineJSON{
		ID:          mv.ID.String(),
		Name:        mv.Name,
		Quantity:    mv.Quantity,
		Unit:        mv.Unit,
		ExpiryDate:  mv.ExpiryDate,
		Location:    mv.Location,
		AddedByName: mv.AddedByName,
		Confidence:  mv.Confidence,
		Warnings:    warningStrings(mv.Warnings),
	}
}

func warningStrings(tags []domain.WarningTag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	return out
}
