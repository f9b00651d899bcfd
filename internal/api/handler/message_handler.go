package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-system/internal/api/metrics"
	"github.com/messagely/messaging-system/internal/core/domain"
	"github.com/messagely/messaging-system/internal/core/ports"
)

// MessageHandler handles message creation, detail retrieval, and mark-read.
// Participant and recipient rules are enforced in the service against a fresh
// read of the message.
type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Create handles POST /messages.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      sendMessageRequest  true   "Message details"
// @Success      201              {object}  createdMessageResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	msg, err := h.messageService.Send(c.Request().Context(), ports.SendMessageInput{
		From:           identity,
		To:             req.ToUsername,
		Body:           req.Body,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return jsonError(c, err)
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, createdMessageResponse{
		Message: createdMessage{
			ID:           msg.ID,
			FromUsername: msg.FromUsername,
			ToUsername:   msg.ToUsername,
			Body:         msg.Body,
			SentAt:       msg.SentAt,
		},
	})
}

// Get handles GET /messages/:id. Participant-only.
//
// @Summary      Get message detail
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Message id"
// @Success      200  {object}  messageDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	detail, err := h.messageService.Get(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.AuthDeniedTotal.WithLabelValues("participant").Inc()
		}
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, messageDetailResponse{
		Message: messageDetail{
			ID:       detail.ID,
			Body:     detail.Body,
			SentAt:   detail.SentAt,
			ReadAt:   detail.ReadAt,
			FromUser: detail.FromUser,
			ToUser:   detail.ToUser,
		},
	})
}

// MarkRead handles POST /messages/:id/read. Recipient-only.
//
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Message id"
// @Success      200  {object}  readReceiptResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	receipt, err := h.messageService.MarkRead(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.AuthDeniedTotal.WithLabelValues("recipient").Inc()
		}
		return jsonError(c, err)
	}

	metrics.MessagesReadTotal.Inc()
	return c.JSON(http.StatusOK, readReceiptResponse{
		Message: readReceipt{ID: receipt.ID, ReadAt: receipt.ReadAt},
	})
}
