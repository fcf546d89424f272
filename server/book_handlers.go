package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/server/response"
	"github.com/techagentng/bookloop/services"
)

func (s *Server) handleGetAllBooks() gin.HandlerFunc {
	return func(c *gin.Context) {
		books, apiErr := s.BookService.GetAllBooks()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, books, nil)
	}
}

func (s *Server) handleGetMyBooks() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		books, apiErr := s.BookService.GetBooksBySeller(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, books, nil)
	}
}

func (s *Server) handleCreateBook() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		price, err := parsePrice(c.PostForm("price"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid price", http.StatusBadRequest))
			return
		}

		params := &services.CreateBookParams{
			Title:       c.PostForm("title"),
			Author:      c.PostForm("author"),
			Genre:       c.PostForm("genre"),
			Condition:   c.PostForm("condition"),
			Price:       price,
			Area:        c.PostForm("area"),
			City:        c.PostForm("city"),
			State:       c.PostForm("state"),
			Country:     c.PostForm("country"),
			Description: c.PostForm("description"),
		}
		if c.Request.MultipartForm != nil {
			params.Images = c.Request.MultipartForm.File["images"]
		}

		book, apiErr := s.BookService.CreateBook(userID, params)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Book listed successfully", http.StatusCreated, book, nil)
	}
}

func (s *Server) handleUpdateBook() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		bookID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid book id", http.StatusBadRequest))
			return
		}

		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		params := &services.UpdateBookParams{
			Title:       c.PostForm("title"),
			Author:      c.PostForm("author"),
			Genre:       c.PostForm("genre"),
			Condition:   c.PostForm("condition"),
			Area:        c.PostForm("area"),
			City:        c.PostForm("city"),
			State:       c.PostForm("state"),
			Country:     c.PostForm("country"),
			Description: c.PostForm("description"),
		}

		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid price", http.StatusBadRequest))
				return
			}
			params.Price = &price
		}

		for _, idStr := range c.PostFormArray("remove_image_ids") {
			imageID, err := uuid.Parse(idStr)
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid image id", http.StatusBadRequest))
				return
			}
			params.RemoveImageIDs = append(params.RemoveImageIDs, imageID)
		}

		if c.Request.MultipartForm != nil {
			params.Images = c.Request.MultipartForm.File["images"]
		}

		book, apiErr := s.BookService.UpdateBook(userID, bookID, params)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Listing updated successfully", http.StatusOK, book, nil)
	}
}

func (s *Server) handleDeleteBook() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.New("userID not found in context", http.StatusInternalServerError))
			return
		}

		bookID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errors.New("Invalid book id", http.StatusBadRequest))
			return
		}

		if apiErr := s.BookService.DeleteBook(userID, bookID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Listing deleted successfully", http.StatusOK, nil, nil)
	}
}

func parsePrice(priceStr string) (float64, error) {
	if priceStr == "" {
		return 0, nil
	}
	return strconv.ParseFloat(priceStr, 64)
}
