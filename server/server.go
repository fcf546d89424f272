package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/db"
	"github.com/techagentng/bookloop/services"
)

type Server struct {
	Config                 *config.Config
	AuthRepository         db.AuthRepository
	AuthService            services.AuthService
	BookRepository         db.BookRepository
	BookService            services.BookService
	ConversationRepository db.ConversationRepository
	ConversationService    services.ConversationService
	MessageRepository      db.MessageRepository
	MessageService         services.MessageService
	MediaService           services.MediaService
	DB                     db.GormDB
}

// Start runs the HTTP server and shuts it down gracefully on SIGINT/SIGTERM
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("Server running on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

// decode binds the JSON body into v and trims string fields
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return nil
}
