package services

import (
	"log"
	"net/http"

	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/db"
	apiError "github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"github.com/techagentng/bookloop/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.UserResponse, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	SocialLoginUser(email, name string) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.UserResponse, *apiError.Error)
	EditUserProfile(userID uint, details *models.EditProfileRequest) (*models.UserResponse, *apiError.Error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (a *authService) SignupUser(request *models.SignupRequest) (*models.UserResponse, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := a.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.New("Email already in use", http.StatusBadRequest)
	}

	if err := a.authRepo.IsUsernameExist(request.Username); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.New("Username already in use", http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Username:       request.Username,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Phone:          request.Phone,
		Location:       request.Location,
		Bio:            request.Bio,
	}

	user, err = a.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	return user.Response(), nil
}

// LoginUser logs in by email or username and returns a token pair
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByIdentifier(loginRequest.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("User not found", http.StatusNotFound)
		}
		log.Printf("Error finding user by identifier: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	if err := a.authRepo.UpdateLastLogin(foundUser.ID); err != nil {
		// non-fatal, the login still succeeds
		log.Printf("Error updating last login for user %s: %v", foundUser.Email, err)
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.Email, a.Config.JWTSecret, foundUser.ID)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: *foundUser.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SocialLoginUser gets or creates the user behind a social identity and
// issues a token pair. Social accounts carry no local password.
func (a *authService) SocialLoginUser(email, name string) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error finding user by email: %v", err)
			return nil, apiError.New("unable to find user", http.StatusInternalServerError)
		}

		newUser := &models.User{
			Email:     email,
			Username:  usernameFromEmail(email),
			FirstName: name,
			IsSocial:  true,
		}
		foundUser, err = a.authRepo.CreateUser(newUser)
		if err != nil {
			log.Printf("Error creating social user %s: %v", email, err)
			return nil, apiError.New("unable to create user", http.StatusInternalServerError)
		}
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.Email, a.Config.JWTSecret, foundUser.ID)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: *foundUser.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authService) GetUserProfile(userID uint) (*models.UserResponse, *apiError.Error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.New("User not found", http.StatusNotFound)
	}
	return user.Response(), nil
}

func (a *authService) EditUserProfile(userID uint, details *models.EditProfileRequest) (*models.UserResponse, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(details); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if _, err := a.authRepo.FindUserByID(userID); err != nil {
		return nil, apiError.New("User not found", http.StatusNotFound)
	}

	if err := a.authRepo.IsEmailTakenByOther(details.Email, userID); err != nil {
		return nil, apiError.New("Email already in use by another account", http.StatusBadRequest)
	}

	if err := a.authRepo.IsUsernameTakenByOther(details.Username, userID); err != nil {
		return nil, apiError.New("Username already in use by another account", http.StatusBadRequest)
	}

	user, err := a.authRepo.UpdateUserProfile(userID, details)
	if err != nil {
		log.Printf("EditUserProfile error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	return user.Response(), nil
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			if i < 2 {
				return email[:i] + "user"
			}
			return email[:i]
		}
	}
	return email
}
