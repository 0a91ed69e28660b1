package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"referral-system/internal/app"
	"referral-system/internal/transport/http/response"
)

type ReferralHandler struct {
	referralService *app.ReferralService
}

type ReferralSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewReferralHandler(referralService *app.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// List godoc
// @Summary      List referrals
// @Description  Returns every user referred by the given user id. Unknown ids yield an empty list.
// @Produce      json
// @Param        user_id path int true "referrer user id"
// @Success      200 {object} map[string][]ReferralSummary
// @Failure      400 {object} map[string]string
// @Router       /referrals/{user_id} [get]
func (h *ReferralHandler) List(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	users, err := h.referralService.ListReferrals(uint(userID))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list referrals failed")
		return
	}

	referrals := make([]ReferralSummary, 0, len(users))
	for _, u := range users {
		referrals = append(referrals, ReferralSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}
