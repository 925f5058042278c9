package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/middleware"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe devolve o administrador do token.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	if userID == 0 {
		httperr.Unauthorized(c, "user_not_in_context", "Sesión inválida.")
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	case err != nil:
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(&user)})
}
