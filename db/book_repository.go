package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

type BookRepository interface {
	CreateBook(book *models.Book) (*models.Book, error)
	GetAllBooks() ([]models.Book, error)
	GetBooksBySeller(sellerID uint) ([]models.Book, error)
	FindBookByID(id uuid.UUID) (*models.Book, error)
	UpdateBook(book *models.Book) error
	DeleteBook(book *models.Book) error
	AddImage(image *models.BookImage) error
	RemoveImage(bookID, imageID uuid.UUID) error
	CountImages(bookID uuid.UUID) (int64, error)
}

type bookRepo struct {
	DB *gorm.DB
}

func NewBookRepo(db *GormDB) BookRepository {
	return &bookRepo{db.DB}
}

func (r *bookRepo) CreateBook(book *models.Book) (*models.Book, error) {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	if err := r.DB.Create(book).Error; err != nil {
		log.Printf("CreateBook error: %v", err)
		return nil, err
	}
	// reload with seller and images attached for the response
	return r.FindBookByID(book.ID)
}

func (r *bookRepo) GetAllBooks() ([]models.Book, error) {
	var books []models.Book
	err := r.DB.
		Preload("Seller").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("book_images.position ASC")
		}).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch books")
	}
	return books, nil
}

func (r *bookRepo) GetBooksBySeller(sellerID uint) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.
		Preload("Seller").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("book_images.position ASC")
		}).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch seller books")
	}
	return books, nil
}

func (r *bookRepo) FindBookByID(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.DB.
		Preload("Seller").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("book_images.position ASC")
		}).
		Where("id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepo) UpdateBook(book *models.Book) error {
	return r.DB.Save(book).Error
}

func (r *bookRepo) DeleteBook(book *models.Book) error {
	// images cascade through the FK constraint
	return r.DB.Select("Images").Delete(book).Error
}

func (r *bookRepo) AddImage(image *models.BookImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return r.DB.Create(image).Error
}

func (r *bookRepo) RemoveImage(bookID, imageID uuid.UUID) error {
	result := r.DB.Where("id = ? AND book_id = ?", imageID, bookID).Delete(&models.BookImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookRepo) CountImages(bookID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.BookImage{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
