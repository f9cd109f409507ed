package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smallbiznis/booksync/internal/quickbooks/oauth"
	settingsdomain "github.com/smallbiznis/booksync/internal/settings/domain"
	"go.uber.org/zap"
)

// Connect redirects the browser to the QuickBooks authorize page.
func (s *Server) Connect(c *gin.Context) {
	authURL, err := s.oauthSvc.AuthorizationURL(uuid.NewString())
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback finishes the OAuth flow: exchanges the code and persists the
// connection.
func (s *Server) Callback(c *gin.Context) {
	code := c.Query("code")
	realmID := c.Query("realmId")

	result, err := s.oauthSvc.Connect(c.Request.Context(), code, realmID)
	if err != nil {
		if errors.Is(err, oauth.ErrMissingCode) || errors.Is(err, oauth.ErrMissingRealmID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("quickbooks connect failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Company fetches the live company record for the connected realm.
func (s *Server) Company(c *gin.Context) {
	ctx := c.Request.Context()

	creds, err := s.settingsSvc.Credentials(ctx)
	if err != nil {
		if errors.Is(err, settingsdomain.ErrNotConnected) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	info, err := s.qb.CompanyInfo(ctx, creds)
	if err != nil {
		s.log.Error("company info fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"realm_id":     creds.RealmID,
		"company_name": info.CompanyName,
		"country":      info.Country,
	})
}
