package services

import (
	"log"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/db"
	apiError "github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

// CreateBookParams carries the parsed listing form
type CreateBookParams struct {
	Title       string
	Author      string
	Genre       string
	Condition   string
	Price       float64
	Area        string
	City        string
	State       string
	Country     string
	Description string
	Images      []*multipart.FileHeader
}

// UpdateBookParams carries the parsed edit form; nil/empty fields keep their
// current value, RemoveImageIDs and Images adjust the image set
type UpdateBookParams struct {
	Title          string
	Author         string
	Genre          string
	Condition      string
	Price          *float64
	Area           string
	City           string
	State          string
	Country        string
	Description    string
	RemoveImageIDs []uuid.UUID
	Images         []*multipart.FileHeader
}

// BookService interface
type BookService interface {
	GetAllBooks() ([]models.BookResponse, *apiError.Error)
	GetBooksBySeller(sellerID uint) ([]models.BookResponse, *apiError.Error)
	CreateBook(sellerID uint, params *CreateBookParams) (*models.BookResponse, *apiError.Error)
	UpdateBook(actingUserID uint, bookID uuid.UUID, params *UpdateBookParams) (*models.BookResponse, *apiError.Error)
	DeleteBook(actingUserID uint, bookID uuid.UUID) *apiError.Error
}

// bookService struct
type bookService struct {
	Config       *config.Config
	bookRepo     db.BookRepository
	mediaService MediaService
}

// NewBookService creates a new instance of BookService
func NewBookService(bookRepo db.BookRepository, mediaService MediaService, conf *config.Config) BookService {
	return &bookService{
		Config:       conf,
		bookRepo:     bookRepo,
		mediaService: mediaService,
	}
}

func (b *bookService) GetAllBooks() ([]models.BookResponse, *apiError.Error) {
	books, err := b.bookRepo.GetAllBooks()
	if err != nil {
		log.Printf("GetAllBooks error: %v", err)
		return nil, apiError.New("Failed to fetch books", http.StatusInternalServerError)
	}
	return toBookResponses(books), nil
}

func (b *bookService) GetBooksBySeller(sellerID uint) ([]models.BookResponse, *apiError.Error) {
	books, err := b.bookRepo.GetBooksBySeller(sellerID)
	if err != nil {
		log.Printf("GetBooksBySeller error: %v", err)
		return nil, apiError.New("Failed to fetch user books", http.StatusInternalServerError)
	}
	return toBookResponses(books), nil
}

func (b *bookService) CreateBook(sellerID uint, params *CreateBookParams) (*models.BookResponse, *apiError.Error) {
	if apiErr := validateBookFields(params.Title, params.Author, params.Genre, params.Condition, params.Price,
		params.City, params.State, params.Country); apiErr != nil {
		return nil, apiErr
	}
	if len(params.Images) > models.MaxBookImages {
		return nil, apiError.New("A listing can carry at most 5 images", http.StatusBadRequest)
	}
	for _, file := range params.Images {
		if err := b.mediaService.ValidateImageFile(file); err != nil {
			return nil, apiError.New(err.Error(), http.StatusBadRequest)
		}
	}

	book := &models.Book{
		ID:          uuid.New(),
		Title:       params.Title,
		Author:      params.Author,
		Genre:       params.Genre,
		Condition:   params.Condition,
		Price:       params.Price,
		Area:        params.Area,
		City:        params.City,
		State:       params.State,
		Country:     params.Country,
		Description: params.Description,
		SellerID:    sellerID,
	}

	for i, file := range params.Images {
		image, err := b.mediaService.ProcessBookImage(file, book.ID, i)
		if err != nil {
			log.Printf("CreateBook image processing error: %v", err)
			return nil, apiError.New("Failed to store listing image", http.StatusInternalServerError)
		}
		book.Images = append(book.Images, *image)
	}

	created, err := b.bookRepo.CreateBook(book)
	if err != nil {
		log.Printf("CreateBook error: %v", err)
		return nil, apiError.New("Failed to list book", http.StatusInternalServerError)
	}

	return created.Response(), nil
}

func (b *bookService) UpdateBook(actingUserID uint, bookID uuid.UUID, params *UpdateBookParams) (*models.BookResponse, *apiError.Error) {
	book, apiErr := b.findOwnedBook(actingUserID, bookID, "Not authorized to edit this listing")
	if apiErr != nil {
		return nil, apiErr
	}

	if params.Title != "" {
		book.Title = params.Title
	}
	if params.Author != "" {
		book.Author = params.Author
	}
	if params.Genre != "" {
		if !models.IsValidGenre(params.Genre) {
			return nil, apiError.New("Invalid genre", http.StatusBadRequest)
		}
		book.Genre = params.Genre
	}
	if params.Condition != "" {
		if !models.IsValidCondition(params.Condition) {
			return nil, apiError.New("Invalid condition", http.StatusBadRequest)
		}
		book.Condition = params.Condition
	}
	if params.Price != nil {
		if *params.Price < 0 {
			return nil, apiError.New("Price cannot be negative", http.StatusBadRequest)
		}
		book.Price = *params.Price
	}
	if params.Area != "" {
		book.Area = params.Area
	}
	if params.City != "" {
		book.City = params.City
	}
	if params.State != "" {
		book.State = params.State
	}
	if params.Country != "" {
		book.Country = params.Country
	}
	if params.Description != "" {
		book.Description = params.Description
	}

	for _, imageID := range params.RemoveImageIDs {
		if err := b.bookRepo.RemoveImage(bookID, imageID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.New("Image not found on this listing", http.StatusNotFound)
			}
			log.Printf("UpdateBook remove image error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}

	if len(params.Images) > 0 {
		count, err := b.bookRepo.CountImages(bookID)
		if err != nil {
			log.Printf("UpdateBook count images error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		if count+int64(len(params.Images)) > models.MaxBookImages {
			return nil, apiError.New("A listing can carry at most 5 images", http.StatusBadRequest)
		}
		for _, file := range params.Images {
			if err := b.mediaService.ValidateImageFile(file); err != nil {
				return nil, apiError.New(err.Error(), http.StatusBadRequest)
			}
		}
		for i, file := range params.Images {
			image, err := b.mediaService.ProcessBookImage(file, bookID, int(count)+i)
			if err != nil {
				log.Printf("UpdateBook image processing error: %v", err)
				return nil, apiError.New("Failed to store listing image", http.StatusInternalServerError)
			}
			if err := b.bookRepo.AddImage(image); err != nil {
				log.Printf("UpdateBook add image error: %v", err)
				return nil, apiError.ErrInternalServerError
			}
		}
	}

	// clear the preloaded set so Save does not re-insert removed rows
	book.Images = nil
	if err := b.bookRepo.UpdateBook(book); err != nil {
		log.Printf("UpdateBook error: %v", err)
		return nil, apiError.New("Failed to update listing", http.StatusInternalServerError)
	}

	updated, err := b.bookRepo.FindBookByID(bookID)
	if err != nil {
		log.Printf("UpdateBook reload error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return updated.Response(), nil
}

func (b *bookService) DeleteBook(actingUserID uint, bookID uuid.UUID) *apiError.Error {
	book, apiErr := b.findOwnedBook(actingUserID, bookID, "Not authorized to delete this listing")
	if apiErr != nil {
		return apiErr
	}

	if err := b.bookRepo.DeleteBook(book); err != nil {
		log.Printf("DeleteBook error: %v", err)
		return apiError.New("Failed to delete listing", http.StatusInternalServerError)
	}
	return nil
}

func (b *bookService) findOwnedBook(actingUserID uint, bookID uuid.UUID, forbiddenMsg string) (*models.Book, *apiError.Error) {
	book, err := b.bookRepo.FindBookByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("Book not found", http.StatusNotFound)
		}
		log.Printf("findOwnedBook error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if book.SellerID != actingUserID {
		return nil, apiError.New(forbiddenMsg, http.StatusForbidden)
	}
	return book, nil
}

func validateBookFields(title, author, genre, condition string, price float64, city, state, country string) *apiError.Error {
	if title == "" || author == "" {
		return apiError.New("Title and author are required", http.StatusBadRequest)
	}
	if price < 0 {
		return apiError.New("Price cannot be negative", http.StatusBadRequest)
	}
	if genre != "" && !models.IsValidGenre(genre) {
		return apiError.New("Invalid genre", http.StatusBadRequest)
	}
	if condition != "" && !models.IsValidCondition(condition) {
		return apiError.New("Invalid condition", http.StatusBadRequest)
	}
	if city == "" || state == "" || country == "" {
		return apiError.New("City, state and country are required", http.StatusBadRequest)
	}
	return nil
}

func toBookResponses(books []models.Book) []models.BookResponse {
	responses := make([]models.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, *books[i].Response())
	}
	return responses
}
