package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
)

// Business error codes raised by the usecases, mapped to a status and a
// user-facing message. Anything unlisted is a storage or rendering failure
// and surfaces as a generic 500.
var businessErrors = map[string]struct {
	status  int
	message string
}{
	"invalid_tiffin_type":    {http.StatusBadRequest, "Invalid tiffin type"},
	"cancel_reason_required": {http.StatusBadRequest, "Reason for cancel or less than 2 tiffin must be provided"},
	"taken_by_required":      {http.StatusBadRequest, "Invalid tiffin data provided"},
	"invalid_price":          {http.StatusBadRequest, "Invalid tiffin data provided"},
	"taken_by_is_admin":      {http.StatusBadRequest, "Tiffins can only be taken by a User role account"},
	"taken_by_not_found":     {http.StatusNotFound, "User not found"},
	"target_is_admin":        {http.StatusBadRequest, "Provided userId is of Admin. User as Admin doesn't have tiffins. So, userId must be of User Role."},
	"invalid_month_or_year":  {http.StatusBadRequest, "Invalid payload - userId, month and year are required"},
	"user_not_found":         {http.StatusNotFound, "User not found"},
	"no_tiffin_data":         {http.StatusNotFound, "No Tiffin data found for the given user, month and year."},
}

func writeUsecaseError(c *gin.Context, err error, fallback string) {
	if code := httperr.BusinessCode(err); code != "" {
		if m, ok := businessErrors[code]; ok {
			httperr.Write(c, m.status, m.message)
			return
		}
	}

	log.Printf("internal error: %v", err)
	httperr.Internal(c, fallback)
}
