package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
	"github.com/bazabarbershop/baza/backend/pkg/utils"
)

// Handler 站点内容的HTTP处理器
type Handler struct {
	services catalog.Store
	table    *knowledge.Table
	site     catalog.Site
}

// New 创建站点内容处理器
func New(services catalog.Store, table *knowledge.Table, site catalog.Site) *Handler {
	return &Handler{
		services: services,
		table:    table,
		site:     site,
	}
}

// RegisterRoutes 注册站点内容相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/services", h.handleListServices)
	r.Get("/services/{serviceID}", h.handleGetService)
	r.Get("/faq", h.handleListFAQ)
	r.Get("/site", h.handleSite)
	r.Get("/portfolio", h.handlePortfolio)
	r.Get("/reviews", h.handleReviews)
	r.Get("/blog", h.handleBlog)
}

// handleListServices 列出所有服务
func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.services.List())
}

// handleGetService 按ID查询服务
func (h *Handler) handleGetService(w http.ResponseWriter, r *http.Request) {
	service, ok := h.services.FindByID(chi.URLParam(r, "serviceID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "service not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, service)
}

// FAQItem is a knowledge entry as shown on the page.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// handleListFAQ 列出常见问题
func (h *Handler) handleListFAQ(w http.ResponseWriter, r *http.Request) {
	entries := h.table.Entries()
	items := make([]FAQItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, FAQItem{Question: e.Question, Answer: e.Answer})
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

// handleSite 返回联系方式与地图位置
func (h *Handler) handleSite(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.site)
}

// handlePortfolio 返回作品集图片
func (h *Handler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, catalog.Portfolio())
}

// handleReviews 返回客户评价
func (h *Handler) handleReviews(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, catalog.Reviews())
}

// handleBlog 返回博客文章列表
func (h *Handler) handleBlog(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, catalog.BlogPosts())
}
