package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userDataResponse struct {
	ID    int64   `json:"id"`
	Email *string `json:"email"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered!"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.cookie.Set(c.Writer, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
}

// handleLogout clears the cookie. It needs no session: clearing an absent
// cookie is harmless, and the token itself stays valid until expiry.
func (s *Server) handleLogout(c *gin.Context) {
	s.cookie.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) handleUserData(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}
	c.JSON(http.StatusOK, userDataResponse{ID: identity.UserID, Email: identity.Email})
}
