package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/services"
)

type quoteRequest struct {
	Text   string `json:"text" binding:"required,max=1000"`
	Author string `json:"author" binding:"max=150"`
}

type quoteResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    *string   `json:"author"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

func newQuoteResponse(q *models.Quote) quoteResponse {
	return quoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		OwnerID:   q.OwnerID,
		CreatedAt: q.CreatedAt.UTC(),
	}
}

func (s *Server) handleListQuotes(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}

	items, err := s.quotes.Recent(c.Request.Context(), identity.UserID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]quoteResponse, 0, len(items))
	for _, q := range items {
		out = append(out, newQuoteResponse(q))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetQuote(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	q, err := s.quotes.Get(c.Request.Context(), identity.UserID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(q))
}

func (s *Server) handleCreateQuote(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := s.quotes.Create(c.Request.Context(), identity.UserID, services.QuoteInput{Text: req.Text, Author: req.Author})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Location", "/api/quotes/"+strconv.FormatInt(q.ID, 10))
	c.JSON(http.StatusCreated, newQuoteResponse(q))
}

func (s *Server) handleUpdateQuote(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := s.quotes.Update(c.Request.Context(), identity.UserID, id, services.QuoteInput{Text: req.Text, Author: req.Author})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(q))
}

func (s *Server) handleDeleteQuote(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.quotes.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote has been deleted"})
}
