package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/services"
)

type bookRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Author      string `json:"author" binding:"required,max=150"`
	Description string `json:"description" binding:"max=2000"`
}

func (r bookRequest) input() services.BookInput {
	return services.BookInput{Title: r.Title, Author: r.Author, Description: r.Description}
}

type bookResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	OwnerID     int64     `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newBookResponse(b *models.Book) bookResponse {
	return bookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt.UTC(),
	}
}

func (s *Server) handleListBooks(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}

	items, err := s.books.List(c.Request.Context(), identity.UserID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]bookResponse, 0, len(items))
	for _, b := range items {
		out = append(out, newBookResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetBook(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := s.books.Get(c.Request.Context(), identity.UserID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookResponse(b))
}

func (s *Server) handleCreateBook(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := s.books.Create(c.Request.Context(), identity.UserID, req.input())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Location", "/api/books/"+strconv.FormatInt(b.ID, 10))
	c.JSON(http.StatusCreated, newBookResponse(b))
}

func (s *Server) handleUpdateBook(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := s.books.Update(c.Request.Context(), identity.UserID, id, req.input())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookResponse(b))
}

func (s *Server) handleDeleteBook(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.books.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book has been deleted"})
}
