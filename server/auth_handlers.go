package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"github.com/techagentng/bookloop/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var signupRequest models.SignupRequest
		if err := decode(c, &signupRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		validate := validator.New()
		if err := validate.Struct(signupRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userResponse, apiErr := s.AuthService.SignupUser(&signupRequest)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "User registered!", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, apiErr := s.AuthService.LoginUser(&loginRequest)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

// handleLogout invalidates the access token by adding it to the blacklist
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("access token not found in context", http.StatusInternalServerError))
			return
		}
		accessToken, ok := token.(string)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("invalid access token format", http.StatusInternalServerError))
			return
		}

		if err := s.AuthRepository.AddToBlackList(&models.Blacklist{Token: accessToken}); err != nil {
			log.Printf("Error adding access token to blacklist: %v", err)
			response.JSON(c, "Logout failed", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
			return
		}

		response.JSON(c, "Logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid user id", http.StatusBadRequest))
			return
		}

		profile, apiErr := s.AuthService.GetUserProfile(uint(userID))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleEditProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid user id", http.StatusBadRequest))
			return
		}

		// a user can only edit their own profile
		actingUserID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}
		if actingUserID != uint(userID) {
			response.JSON(c, "", http.StatusForbidden, nil, errors.New("Not authorized to edit this profile", http.StatusForbidden))
			return
		}

		var editRequest models.EditProfileRequest
		if err := decode(c, &editRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.AuthService.EditUserProfile(uint(userID), &editRequest)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Profile updated successfully", http.StatusOK, profile, nil)
	}
}
