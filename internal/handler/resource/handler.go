package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/strideapp/stride/backend/internal/model/resource"
	"github.com/strideapp/stride/backend/pkg/utils"
)

// Handler 支持资源目录的HTTP处理器
type Handler struct {
	resources resource.Store
}

// New 创建资源处理器
func New(resources resource.Store) *Handler {
	return &Handler{resources: resources}
}

// RegisterRoutes 注册资源相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.handleList)
	r.Get("/resources/{resourceID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.resources.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "resourceID")

	item, ok := h.resources.FindByID(resourceID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
