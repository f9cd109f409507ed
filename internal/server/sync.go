package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/smallbiznis/booksync/internal/settings/domain"
	"github.com/smallbiznis/booksync/internal/sync"
	"go.uber.org/zap"
)

// SyncAll runs every entity kind in dependency order.
func (s *Server) SyncAll(c *gin.Context) {
	results, err := s.syncSvc.SyncAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, settingsdomain.ErrNotConnected) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("sync all failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SyncEntity runs one entity kind named by the path segment.
func (s *Server) SyncEntity(c *gin.Context) {
	kind, ok := sync.KindFromName(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return
	}

	result, err := s.syncSvc.SyncKind(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, settingsdomain.ErrNotConnected) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("entity sync failed",
			zap.String("entity", string(kind)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
