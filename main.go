package main

import (
	"log"

	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/db"
	"github.com/techagentng/bookloop/server"
	"github.com/techagentng/bookloop/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	bookRepo := db.NewBookRepo(gormDB)
	conversationRepo := db.NewConversationRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)

	mediaService := services.NewMediaService(conf)
	authService := services.NewAuthService(authRepo, conf)
	bookService := services.NewBookService(bookRepo, mediaService, conf)
	conversationService := services.NewConversationService(conversationRepo, bookRepo, conf)
	messageService := services.NewMessageService(messageRepo, conversationRepo, conf)

	s := &server.Server{
		Config:                 conf,
		AuthRepository:         authRepo,
		AuthService:            authService,
		BookRepository:         bookRepo,
		BookService:            bookService,
		ConversationRepository: conversationRepo,
		ConversationService:    conversationService,
		MessageRepository:      messageRepo,
		MessageService:         messageService,
		MediaService:           mediaService,
		DB:                     *gormDB,
	}

	s.Start()
}
