package db

import (
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	IsUsernameExist(username string) error
	IsEmailTakenByOther(email string, userID uint) error
	IsUsernameTakenByOther(username string, userID uint) error
	FindUserByIdentifier(identifier string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUserProfile(userID uint, details *models.EditProfileRequest) (*models.User, error)
	UpdateLastLogin(userID uint) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("CreateUser error: user is nil")
		return nil, errors.New("user is nil")
	}

	result := a.DB.Create(user)
	if result.Error != nil {
		log.Printf("CreateUser error: %v", result.Error)
		return nil, result.Error
	}

	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsUsernameExist(username string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("username already in use")
	}
	return nil
}

func (a *authRepo) IsEmailTakenByOther(email string, userID uint) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsUsernameTakenByOther(username string, userID uint) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("username = ? AND id <> ?", username, userID).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("username already in use")
	}
	return nil
}

// FindUserByIdentifier looks the user up by email or username,
// case-insensitively, the way the login form accepts either
func (a *authRepo) FindUserByIdentifier(identifier string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("LOWER(email) = ? OR LOWER(username) = ?",
		strings.ToLower(identifier), strings.ToLower(identifier)).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUserProfile(userID uint, details *models.EditProfileRequest) (*models.User, error) {
	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	user.Username = details.Username
	user.Email = details.Email
	user.FirstName = details.FirstName
	user.LastName = details.LastName
	user.Phone = details.Phone
	user.Location = details.Location
	user.Bio = details.Bio

	if err := a.DB.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *authRepo) UpdateLastLogin(userID uint) error {
	now := time.Now()
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Update("last_login", now).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	result := a.DB.Create(blacklist)
	return result.Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", strings.TrimSpace(token)).Count(&count)
	return count > 0
}
