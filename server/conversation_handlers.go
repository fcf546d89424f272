package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"github.com/techagentng/bookloop/server/response"
)

func (s *Server) handleShowInterest() gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		var createRequest models.CreateConversationRequest
		if err := decode(c, &createRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		bookID, err := uuid.Parse(createRequest.BookID)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid book id", http.StatusBadRequest))
			return
		}

		conversation, apiErr := s.ConversationService.ShowInterest(buyerID, bookID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Interest sent to seller", http.StatusCreated, conversation, nil)
	}
}

func (s *Server) handleGetPendingConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, apiErr := pathUserID(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		// a seller only sees their own pending requests
		actingUserID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}
		if actingUserID != sellerID {
			response.JSON(c, "", http.StatusForbidden, nil, errors.New("Not authorized to view these requests", http.StatusForbidden))
			return
		}

		conversations, svcErr := s.ConversationService.GetPendingForSeller(sellerID)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}

		response.JSON(c, "", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleGetConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, apiErr := pathUserID(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		actingUserID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}
		if actingUserID != userID {
			response.JSON(c, "", http.StatusForbidden, nil, errors.New("Not authorized to view these conversations", http.StatusForbidden))
			return
		}

		conversations, svcErr := s.ConversationService.GetConversationsForUser(userID)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}

		response.JSON(c, "", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleApproveConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		actingUserID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid conversation id", http.StatusBadRequest))
			return
		}

		var approveRequest models.ApproveConversationRequest
		if err := decode(c, &approveRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conversation, apiErr := s.ConversationService.ApproveConversation(actingUserID, conversationID, approveRequest.Status)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Request "+conversation.Status, http.StatusOK, conversation, nil)
	}
}

// pathUserID parses the :userId path parameter
func pathUserID(c *gin.Context) (uint, *errors.Error) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return 0, errors.New("Invalid user id", http.StatusBadRequest)
	}
	return uint(userID), nil
}
