package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/adhere/internal/adherence"
)

type checkinRequest struct {
	CheckedIn *bool `json:"checked_in" binding:"required"`
}

type resetResponse struct {
	SubjectID string `json:"subject_id"`
	Deleted   int64  `json:"deleted"`
}

func (h *handler) health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.log.Warn("health check failed", "error", err)
			fail(c, http.StatusServiceUnavailable, CodeStoreUnavailable, "storage unavailable")
			return
		}
	}
	success(c, gin.H{"status": "ok"})
}

func (h *handler) listTreatments(c *gin.Context) {
	archived, _ := strconv.ParseBool(c.DefaultQuery("archived", "false"))
	treatments, err := h.tracker.Treatments(c.Request.Context(), c.Param("subject"), archived)
	if err != nil {
		h.failErr(c, err)
		return
	}
	success(c, treatments)
}

func (h *handler) overview(c *gin.Context) {
	overview, err := h.tracker.Overview(c.Request.Context(), c.Param("subject"))
	if err != nil {
		h.failErr(c, err)
		return
	}
	success(c, overview)
}

// summary accepts window, week_start and no_data query overrides.
func (h *handler) summary(c *gin.Context) {
	opts := h.tracker.Options()
	if v := c.Query("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidInput, "window must be an integer number of days")
			return
		}
		opts.WindowDays = n
	}
	if v, ok := c.GetQuery("week_start"); ok {
		ws, err := adherence.ParseWeekStart(v)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
			return
		}
		opts.WeekStart = ws
	}
	if v := c.Query("no_data"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidInput, "no_data must be a boolean")
			return
		}
		opts.DistinguishNoData = b
	}

	summary, err := h.tracker.SummaryWithOptions(c.Request.Context(), c.Param("subject"), c.Param("treatment"), opts)
	if err != nil {
		h.failErr(c, err)
		return
	}
	success(c, summary)
}

// history lists stored check-ins over ?window= days ending today.
func (h *handler) history(c *gin.Context) {
	window := 0
	if v := c.Query("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidInput, "window must be an integer number of days")
			return
		}
		window = n
	}
	checkins, err := h.tracker.History(c.Request.Context(), c.Param("subject"), c.Param("treatment"), window)
	if err != nil {
		h.failErr(c, err)
		return
	}
	success(c, checkins)
}

func (h *handler) checkIn(c *gin.Context) {
	var req checkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidInput, `body must be {"checked_in": true|false}`)
		return
	}

	checkin, err := h.tracker.CheckIn(c.Request.Context(), c.Param("subject"), c.Param("treatment"), c.Param("date"), *req.CheckedIn)
	if err != nil {
		h.failErr(c, err)
		return
	}
	success(c, checkin)
}

func (h *handler) reset(c *gin.Context) {
	subject := c.Param("subject")
	n, err := h.tracker.Reset(c.Request.Context(), subject)
	if err != nil {
		h.failErr(c, err)
		return
	}
	success(c, resetResponse{SubjectID: subject, Deleted: n})
}
