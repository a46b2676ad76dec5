package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/httpresp"
	"github.com/snejhirpara/tiffin-tracker/internal/middleware"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
	uctiffin "github.com/snejhirpara/tiffin-tracker/internal/usecase/tiffin"
)

type UserHandler struct {
	db        *gorm.DB
	takenUC   *uctiffin.ListTakenTiffins
	summaryUC *uctiffin.MonthlySummary
}

func NewUserHandler(
	db *gorm.DB,
	takenUC *uctiffin.ListTakenTiffins,
	summaryUC *uctiffin.MonthlySummary,
) *UserHandler {
	return &UserHandler{
		db:        db,
		takenUC:   takenUC,
		summaryUC: summaryUC,
	}
}

// AdminUserInfo lists an account together with the User accounts it
// administers.
type AdminUserInfo struct {
	models.PublicProfile
	Users []models.PublicProfile `json:"users"`
}

// ======================================================
// TAKEN TIFFINS (logged-in user)
// ======================================================

func (h *UserHandler) TakenTiffins(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	tiffins, err := h.takenUC.Execute(c.Request.Context(), userID)
	if err != nil {
		writeUsecaseError(c, err, "Server Error while fetching tiffins for logged in user")
		return
	}

	httpresp.OK(c, tiffins, "Tiffins for logged in user fetched successfully")
}

// ======================================================
// ADMIN USERS
// ======================================================

func (h *UserHandler) AdminUsers(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if !domainuser.IsAdmin(role) {
		httperr.BadRequest(c, "Role must be Admin in order to fetch all Users")
		return
	}

	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("id <> ?", callerID).
		Order("id ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "Error while fetching users for currently logged in Admin.")
		return
	}

	// Group administered accounts under their Admin in one pass.
	administered := make(map[uint][]models.PublicProfile)
	for _, u := range users {
		if u.AdminID != nil {
			administered[*u.AdminID] = append(administered[*u.AdminID], u.Public())
		}
	}

	out := make([]AdminUserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUserInfo{
			PublicProfile: u.Public(),
			Users:         administered[u.ID],
		})
	}

	httpresp.OK(c, out, "All users for current logged in admin fetched successfully.")
}

// ======================================================
// MONTHLY TOTAL AMOUNT
// ======================================================

func (h *UserHandler) TotalAmount(c *gin.Context) {
	var req MonthlyQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid payload - userId, month and year are required")
		return
	}

	aggregate, err := h.summaryUC.Execute(
		c.Request.Context(),
		req.UserID,
		req.Month,
		req.Year,
	)
	if err != nil {
		writeUsecaseError(c, err, "Error while fetching net total tiffins info for a user for a particular month")
		return
	}

	if aggregate == nil {
		httpresp.OK(c, gin.H{}, "Total amount for taken tiffins for a month is calculated successfully")
		return
	}

	httpresp.OK(c, aggregate, "Total amount for taken tiffins for a month is calculated successfully")
}
