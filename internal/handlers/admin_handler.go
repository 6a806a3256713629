package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/repositories"
	"github.com/ouppakdigital/quiz-service/internal/services"
	"github.com/ouppakdigital/quiz-service/internal/utils"
)

// AdminHandler manages the school, campus and user records behind the admin
// surface.
type AdminHandler struct {
	BaseHandler
	orgService services.OrgService
}

func NewAdminHandler(orgService services.OrgService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		orgService:  orgService,
	}
}

// ===== SCHOOLS =====

func (h *AdminHandler) CreateSchool(c *gin.Context) {
	h.LogRequest(c, "Creating school")

	var req services.SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	school, err := h.orgService.CreateSchool(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (h *AdminHandler) GetSchool(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	school, err := h.orgService.GetSchool(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *AdminHandler) UpdateSchool(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	school, err := h.orgService.UpdateSchool(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *AdminHandler) DeleteSchool(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.orgService.DeleteSchool(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "School deleted"})
}

func (h *AdminHandler) ListSchools(c *gin.Context) {
	limit, offset := pagination(c)

	schools, total, err := h.orgService.ListSchools(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: schools, Total: total})
}

// ===== CAMPUSES =====

func (h *AdminHandler) CreateCampus(c *gin.Context) {
	h.LogRequest(c, "Creating campus")

	var req services.CampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	campus, err := h.orgService.CreateCampus(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campus)
}

func (h *AdminHandler) GetCampus(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	campus, err := h.orgService.GetCampus(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campus)
}

func (h *AdminHandler) UpdateCampus(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.CampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	campus, err := h.orgService.UpdateCampus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campus)
}

func (h *AdminHandler) DeleteCampus(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.orgService.DeleteCampus(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Campus deleted"})
}

func (h *AdminHandler) ListCampuses(c *gin.Context) {
	limit, offset := pagination(c)

	campuses, total, err := h.orgService.ListCampuses(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: campuses, Total: total})
}

// ===== USERS =====

func (h *AdminHandler) CreateUser(c *gin.Context) {
	h.LogRequest(c, "Creating user")

	var req services.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.orgService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id := parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	user, err := h.orgService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id := parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.orgService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := parseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.orgService.DeleteUser(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)

	filters := repositories.UserFilters{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if role := c.Query("role"); role != "" {
		userRole := models.UserRole(role)
		filters.Role = &userRole
	}
	if campusID := parseIntQuery(c, "campus_id", 0); campusID > 0 {
		id := uint(campusID)
		filters.CampusID = &id
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		active := activeStr == "true"
		filters.IsActive = &active
	}

	users, total, err := h.orgService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: users, Total: total})
}
