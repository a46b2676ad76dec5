package handlers

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/httpresp"
	"github.com/snejhirpara/tiffin-tracker/internal/middleware"
	ucreport "github.com/snejhirpara/tiffin-tracker/internal/usecase/report"
	uctiffin "github.com/snejhirpara/tiffin-tracker/internal/usecase/tiffin"
)

// ======================================================
// HANDLER
// ======================================================

type TiffinHandler struct {
	addUC      *uctiffin.AddTiffin
	deleteUC   *uctiffin.DeleteTiffin
	datewiseUC *uctiffin.MonthlyDatewise
	billUC     *ucreport.GenerateBill
}

func NewTiffinHandler(
	addUC *uctiffin.AddTiffin,
	deleteUC *uctiffin.DeleteTiffin,
	datewiseUC *uctiffin.MonthlyDatewise,
	billUC *ucreport.GenerateBill,
) *TiffinHandler {
	return &TiffinHandler{
		addUC:      addUC,
		deleteUC:   deleteUC,
		datewiseUC: datewiseUC,
		billUC:     billUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddTiffinRequest struct {
	Count        *int     `json:"count" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	CancelReason *string  `json:"reason_for_cancel_or_less_than_2"`
	TakenBy      uint     `json:"taken_by" binding:"required"`
	Price        *float64 `json:"price" binding:"required"`
}

type DeleteTiffinRequest struct {
	ID uint `json:"id" binding:"required"`
}

type MonthlyQueryRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Month  string `json:"month" binding:"required"`
	Year   int    `json:"year" binding:"required"`
}

// ======================================================
// ADD
// ======================================================

func (h *TiffinHandler) Add(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	if domainuser.IsAdmin(role) {
		httperr.BadRequest(c, "Logged In user must have User Role in order to add tiffin.")
		return
	}

	var req AddTiffinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid tiffin data provided")
		return
	}

	entry, err := h.addUC.Execute(c.Request.Context(), uctiffin.AddTiffinInput{
		Count:        *req.Count,
		Type:         req.Type,
		CancelReason: req.CancelReason,
		TakenByID:    req.TakenBy,
		Price:        *req.Price,
	})
	if err != nil {
		writeUsecaseError(c, err, "Tiffin saving failed due to internal server error")
		return
	}

	httpresp.OK(c, gin.H{"id": entry.ID}, "Tiffin added successfully")
}

// ======================================================
// DELETE
// ======================================================

func (h *TiffinHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req DeleteTiffinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "id field of the Tiffin must be needed")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actorID, req.ID); err != nil {
		writeUsecaseError(c, err, "Tiffin deletion failed")
		return
	}

	httpresp.OK(c, gin.H{}, "Tiffin deleted successfully")
}

// ======================================================
// DATEWISE MONTHLY AGGREGATE
// ======================================================

func (h *TiffinHandler) DatewiseInfo(c *gin.Context) {
	var req MonthlyQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid payload - userId, month and year are required")
		return
	}

	aggregate, err := h.datewiseUC.Execute(
		c.Request.Context(),
		req.UserID,
		req.Month,
		req.Year,
	)
	if err != nil {
		writeUsecaseError(c, err, "Error while fetching net total tiffins info for a user for a particular month")
		return
	}

	// No entries in range is an empty aggregate, not an error.
	if aggregate == nil {
		httpresp.OK(c, gin.H{}, "Total amount for taken tiffins for a month is calculated successfully")
		return
	}

	httpresp.OK(c, aggregate, "Total amount for taken tiffins for a month is calculated successfully")
}

// ======================================================
// PDF BILL
// ======================================================

func (h *TiffinHandler) GenerateReport(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req MonthlyQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid payload - userId, month and year are required")
		return
	}

	bill, err := h.billUC.Execute(
		c.Request.Context(),
		actorID,
		req.UserID,
		req.Month,
		req.Year,
	)
	if err != nil {
		writeUsecaseError(c, err, "Error while generating a report for Tiffin Bill")
		return
	}

	tmp, err := os.CreateTemp("", "tiffin-bill-*.pdf")
	if err != nil {
		httperr.Internal(c, "Error while generating a report for Tiffin Bill")
		return
	}
	tmpPath := tmp.Name()

	// The temp artifact is removed on every exit path; a failed removal is
	// logged, never surfaced.
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("failed to remove temp bill %s: %v", tmpPath, err)
		}
	}()

	if _, err := tmp.Write(bill.PDF); err != nil {
		tmp.Close()
		httperr.Internal(c, "Error while generating a report for Tiffin Bill")
		return
	}
	if err := tmp.Close(); err != nil {
		httperr.Internal(c, "Error while generating a report for Tiffin Bill")
		return
	}

	c.FileAttachment(tmpPath, bill.Filename)
}
