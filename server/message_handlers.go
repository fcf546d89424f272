package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"github.com/techagentng/bookloop/server/response"
)

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		conversationID, err := uuid.Parse(c.Param("conversationId"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid conversation id", http.StatusBadRequest))
			return
		}

		var sendRequest models.SendMessageRequest
		if err := decode(c, &sendRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		message, apiErr := s.MessageService.SendMessage(senderID, conversationID, sendRequest.Text)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Message sent", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleGetMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		conversationID, err := uuid.Parse(c.Param("conversationId"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid conversation id", http.StatusBadRequest))
			return
		}

		messages, apiErr := s.MessageService.GetMessages(requesterID, conversationID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, messages, nil)
	}
}
