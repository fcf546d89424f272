package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/techagentng/bookloop/db"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

// in-memory repository fakes shared by the service tests

type fakeAuthRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAuthRepo) IsEmailExist(email string) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (f *fakeAuthRepo) IsUsernameExist(username string) error {
	for _, u := range f.users {
		if u.Username == username {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (f *fakeAuthRepo) IsEmailTakenByOther(email string, userID uint) error {
	for _, u := range f.users {
		if u.ID != userID && strings.EqualFold(u.Email, email) {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (f *fakeAuthRepo) IsUsernameTakenByOther(username string, userID uint) error {
	for _, u := range f.users {
		if u.ID != userID && u.Username == username {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (f *fakeAuthRepo) FindUserByIdentifier(identifier string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, identifier) || u.Username == identifier {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) UpdateUserProfile(userID uint, details *models.EditProfileRequest) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Username = details.Username
	u.Email = details.Email
	u.FirstName = details.FirstName
	u.LastName = details.LastName
	u.Phone = details.Phone
	u.Location = details.Location
	u.Bio = details.Bio
	return u, nil
}

func (f *fakeAuthRepo) UpdateLastLogin(userID uint) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func (f *fakeAuthRepo) AddToBlackList(blacklist *models.Blacklist) error { return nil }

func (f *fakeAuthRepo) IsTokenInBlacklist(token string) bool { return false }

type fakeBookRepo struct {
	books map[uuid.UUID]*models.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uuid.UUID]*models.Book)}
}

func (f *fakeBookRepo) CreateBook(book *models.Book) (*models.Book, error) {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	f.books[book.ID] = book
	return book, nil
}

func (f *fakeBookRepo) GetAllBooks() ([]models.Book, error) {
	books := make([]models.Book, 0, len(f.books))
	for _, b := range f.books {
		books = append(books, *b)
	}
	return books, nil
}

func (f *fakeBookRepo) GetBooksBySeller(sellerID uint) ([]models.Book, error) {
	var books []models.Book
	for _, b := range f.books {
		if b.SellerID == sellerID {
			books = append(books, *b)
		}
	}
	return books, nil
}

func (f *fakeBookRepo) FindBookByID(id uuid.UUID) (*models.Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) UpdateBook(book *models.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.books[book.ID] = book
	return nil
}

func (f *fakeBookRepo) DeleteBook(book *models.Book) error {
	delete(f.books, book.ID)
	return nil
}

func (f *fakeBookRepo) AddImage(image *models.BookImage) error {
	b, ok := f.books[image.BookID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Images = append(b.Images, *image)
	return nil
}

func (f *fakeBookRepo) RemoveImage(bookID, imageID uuid.UUID) error {
	b, ok := f.books[bookID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, img := range b.Images {
		if img.ID == imageID {
			b.Images = append(b.Images[:i], b.Images[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) CountImages(bookID uuid.UUID) (int64, error) {
	b, ok := f.books[bookID]
	if !ok {
		return 0, nil
	}
	return int64(len(b.Images)), nil
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*models.Conversation)}
}

func (f *fakeConversationRepo) CreateConversation(conversation *models.Conversation) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if c.BookID == conversation.BookID && c.BuyerID == conversation.BuyerID {
			return nil, db.ErrDuplicateConversation
		}
	}
	if conversation.ID == uuid.Nil {
		conversation.ID = uuid.New()
	}
	conversation.LastMessageAt = time.Now()
	f.conversations[conversation.ID] = conversation
	return conversation, nil
}

func (f *fakeConversationRepo) FindConversationByID(id uuid.UUID) (*models.Conversation, error) {
	if c, ok := f.conversations[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConversationRepo) GetPendingForSeller(sellerID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	for _, c := range f.conversations {
		if c.SellerID == sellerID && c.Status == models.ConversationPending {
			conversations = append(conversations, *c)
		}
	}
	return conversations, nil
}

func (f *fakeConversationRepo) GetAcceptedForUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	for _, c := range f.conversations {
		if c.Status == models.ConversationAccepted && (c.BuyerID == userID || c.SellerID == userID) {
			conversations = append(conversations, *c)
		}
	}
	return conversations, nil
}

func (f *fakeConversationRepo) UpdateStatus(id uuid.UUID, status string) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.Status = status
	c.LastMessageAt = time.Now()
	return c, nil
}

type fakeMessageRepo struct {
	messages         []models.Message
	conversationRepo *fakeConversationRepo
}

func newFakeMessageRepo(conversationRepo *fakeConversationRepo) *fakeMessageRepo {
	return &fakeMessageRepo{conversationRepo: conversationRepo}
}

func (f *fakeMessageRepo) SaveMessage(message *models.Message) (*models.Message, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)

	if c, ok := f.conversationRepo.conversations[message.ConversationID]; ok {
		c.LastMessage = message.Text
		c.LastMessageAt = message.CreatedAt
	}
	return message, nil
}

func (f *fakeMessageRepo) GetMessagesByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}
