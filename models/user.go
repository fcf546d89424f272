package models

import (
	"errors"
	"time"

	goval "github.com/go-passwd/validator"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered user of the marketplace
type User struct {
	Model
	Username       string     `json:"username" gorm:"unique;not null" binding:"required,min=2"`
	Email          string     `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string     `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string     `json:"-"`
	FirstName      string     `json:"first_name" conform:"trim"`
	LastName       string     `json:"last_name" conform:"trim"`
	Phone          string     `json:"phone" gorm:"default:null"`
	Location       string     `json:"location" conform:"trim"`
	Bio            string     `json:"bio" conform:"trim"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	IsSocial       bool       `json:"-"`
	Books          []Book     `gorm:"foreignKey:SellerID" json:"-"`
}

// UserResponse is the public shape of a user, credential secret excluded
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
}

// UserSummary is the trimmed-down shape attached to books, conversations and messages
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SignupRequest struct {
	Username  string `json:"username" binding:"required,min=2" conform:"trim"`
	Email     string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" conform:"trim"`
	LastName  string `json:"last_name" conform:"trim"`
	Phone     string `json:"phone" conform:"trim"`
	Location  string `json:"location" conform:"trim"`
	Bio       string `json:"bio" conform:"trim"`
}

// LoginRequest logs in by email or username
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" conform:"trim"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type EditProfileRequest struct {
	Username  string `json:"username" binding:"required,min=2" conform:"trim"`
	Email     string `json:"email" binding:"required,email" conform:"trim,lower"`
	FirstName string `json:"first_name" conform:"trim"`
	LastName  string `json:"last_name" conform:"trim"`
	Phone     string `json:"phone" conform:"trim"`
	Location  string `json:"location" conform:"trim"`
	Bio       string `json:"bio" conform:"trim"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	err := passwordValidator.Validate(password)
	return err
}

// ValidateWhiteSpaces trims string fields in place according to conform tags
func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (u *User) Response() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Location:  u.Location,
		Bio:       u.Bio,
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
