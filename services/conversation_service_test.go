package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/models"
)

func newConversationFixture() (ConversationService, *fakeConversationRepo, *fakeBookRepo) {
	conversationRepo := newFakeConversationRepo()
	bookRepo := newFakeBookRepo()
	svc := NewConversationService(conversationRepo, bookRepo, &config.Config{})
	return svc, conversationRepo, bookRepo
}

func seedBook(bookRepo *fakeBookRepo, sellerID uint) *models.Book {
	book := &models.Book{
		ID:       uuid.New(),
		Title:    "The Go Programming Language",
		Author:   "Donovan and Kernighan",
		SellerID: sellerID,
	}
	bookRepo.books[book.ID] = book
	return book
}

func TestShowInterestCreatesPendingConversation(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)

	conversation, apiErr := svc.ShowInterest(2, book.ID)
	if apiErr != nil {
		t.Fatalf("ShowInterest returned error: %v", apiErr)
	}
	if conversation.Status != models.ConversationPending {
		t.Errorf("status = %q, want %q", conversation.Status, models.ConversationPending)
	}
	if conversation.BuyerID != 2 {
		t.Errorf("buyerID = %d, want 2", conversation.BuyerID)
	}
	if conversation.SellerID != 1 {
		t.Errorf("sellerID = %d, want 1", conversation.SellerID)
	}
}

func TestShowInterestUnknownBook(t *testing.T) {
	svc, _, _ := newConversationFixture()

	_, apiErr := svc.ShowInterest(2, uuid.New())
	if apiErr == nil {
		t.Fatal("expected error for unknown book, got nil")
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusNotFound)
	}
}

func TestShowInterestOwnBook(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)

	_, apiErr := svc.ShowInterest(1, book.ID)
	if apiErr == nil {
		t.Fatal("expected error for own book, got nil")
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Message != "You cannot show interest in your own book" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestShowInterestTwiceRejected(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)

	if _, apiErr := svc.ShowInterest(2, book.ID); apiErr != nil {
		t.Fatalf("first ShowInterest returned error: %v", apiErr)
	}
	_, apiErr := svc.ShowInterest(2, book.ID)
	if apiErr == nil {
		t.Fatal("expected duplicate error, got nil")
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Message != "You have already shown interest in this book" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestApproveConversation(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)
	conversation, _ := svc.ShowInterest(2, book.ID)

	updated, apiErr := svc.ApproveConversation(1, conversation.ID, models.ConversationAccepted)
	if apiErr != nil {
		t.Fatalf("ApproveConversation returned error: %v", apiErr)
	}
	if updated.Status != models.ConversationAccepted {
		t.Errorf("status = %q, want %q", updated.Status, models.ConversationAccepted)
	}
}

func TestApproveConversationSellerOnly(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)
	conversation, _ := svc.ShowInterest(2, book.ID)

	// neither the buyer nor a third party may settle the request
	for _, userID := range []uint{2, 3} {
		_, apiErr := svc.ApproveConversation(userID, conversation.ID, models.ConversationAccepted)
		if apiErr == nil {
			t.Fatalf("user %d: expected error, got nil", userID)
		}
		if apiErr.Status != http.StatusForbidden {
			t.Errorf("user %d: status = %d, want %d", userID, apiErr.Status, http.StatusForbidden)
		}
	}
}

func TestApproveConversationInvalidStatus(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)
	conversation, _ := svc.ShowInterest(2, book.ID)

	for _, status := range []string{"", "pending", "approved", "ACCEPTED"} {
		_, apiErr := svc.ApproveConversation(1, conversation.ID, status)
		if apiErr == nil {
			t.Fatalf("status %q: expected error, got nil", status)
		}
		if apiErr.Status != http.StatusBadRequest {
			t.Errorf("status %q: got %d, want %d", status, apiErr.Status, http.StatusBadRequest)
		}
	}
}

func TestApproveConversationAlreadySettled(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	book := seedBook(bookRepo, 1)
	conversation, _ := svc.ShowInterest(2, book.ID)

	if _, apiErr := svc.ApproveConversation(1, conversation.ID, models.ConversationRejected); apiErr != nil {
		t.Fatalf("first approval returned error: %v", apiErr)
	}

	// rejected is terminal, the seller cannot flip it later
	_, apiErr := svc.ApproveConversation(1, conversation.ID, models.ConversationAccepted)
	if apiErr == nil {
		t.Fatal("expected error for settled request, got nil")
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Message != "This request has already been rejected" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestGetPendingForSeller(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	bookA := seedBook(bookRepo, 1)
	bookB := seedBook(bookRepo, 1)
	bookC := seedBook(bookRepo, 5)

	svc.ShowInterest(2, bookA.ID)
	accepted, _ := svc.ShowInterest(3, bookB.ID)
	svc.ApproveConversation(1, accepted.ID, models.ConversationAccepted)
	svc.ShowInterest(2, bookC.ID)

	pending, apiErr := svc.GetPendingForSeller(1)
	if apiErr != nil {
		t.Fatalf("GetPendingForSeller returned error: %v", apiErr)
	}
	if len(pending) != 1 {
		t.Fatalf("len(pending) = %d, want 1", len(pending))
	}
	if pending[0].BookID != bookA.ID {
		t.Errorf("pending conversation is for book %v, want %v", pending[0].BookID, bookA.ID)
	}
}

func TestGetConversationsForUserOnlyAccepted(t *testing.T) {
	svc, _, bookRepo := newConversationFixture()
	bookA := seedBook(bookRepo, 1)
	bookB := seedBook(bookRepo, 1)

	accepted, _ := svc.ShowInterest(2, bookA.ID)
	svc.ApproveConversation(1, accepted.ID, models.ConversationAccepted)
	svc.ShowInterest(2, bookB.ID)

	for _, userID := range []uint{1, 2} {
		conversations, apiErr := svc.GetConversationsForUser(userID)
		if apiErr != nil {
			t.Fatalf("GetConversationsForUser(%d) returned error: %v", userID, apiErr)
		}
		if len(conversations) != 1 {
			t.Fatalf("user %d: len = %d, want 1", userID, len(conversations))
		}
		if conversations[0].ID != accepted.ID {
			t.Errorf("user %d: got conversation %v, want %v", userID, conversations[0].ID, accepted.ID)
		}
	}
}
