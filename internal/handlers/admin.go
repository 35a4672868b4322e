package handlers

import (
	"net/http"

	dom "github.com/Akshay-Unavane/To-Do-App/internal/domain"
	"github.com/Akshay-Unavane/To-Do-App/internal/dto"
	"github.com/Akshay-Unavane/To-Do-App/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the secret-gated debug dump. This is the one deliberate
// exception to per-user isolation.
type AdminHandler struct {
	secret string
	svc    *service.AdminService
}

func NewAdminHandler(secret string, svc *service.AdminService) *AdminHandler {
	return &AdminHandler{secret: secret, svc: svc}
}

// Debug godoc
// @Summary      Dump all users (without password hashes) and todos
// @Description  Local/dev inspection endpoint gated by a shared secret in
// @Description  the "secret" query parameter or the X-Admin-Secret header.
// @Tags         admin
// @Produce      json
// @Param        secret  query  string  false  "Admin secret"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/debug [get]
func (h *AdminHandler) Debug(c *gin.Context) {
	secret := c.Query("secret")
	if secret == "" {
		secret = c.GetHeader("X-Admin-Secret")
	}
	if secret == "" || secret != h.secret {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	dump, err := h.svc.Dump(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": usersToResponses(dump.Users),
		"todos": todosToResponses(dump.Todos),
	})
}

func usersToResponses(list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i, u := range list {
		out[i] = dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out
}
