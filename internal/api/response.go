package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/storage"
	"github.com/julianstephens/adhere/internal/tracker"
)

// Application error codes carried in the envelope next to the HTTP status.
const (
	CodeOK               = 0
	CodeInvalidInput     = 40001
	CodeFutureCheckin    = 40002
	CodeArchived         = 40003
	CodeNotFound         = 40401
	CodeConflict         = 40901
	CodeRateLimited      = 42901
	CodeInternal         = 50001
	CodeStoreUnavailable = 50301
)

// JSONResponse is the uniform envelope of every API response.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status, code int, message string, data interface{}) {
	c.JSON(status, JSONResponse{Code: code, Message: message, Data: data})
}

func success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, CodeOK, "success", data)
}

func fail(c *gin.Context, status, code int, message string) {
	respond(c, status, code, message, nil)
}

// failErr maps domain errors to a status and code. Internal errors are
// logged and reported without detail.
func (h *handler) failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrFutureCheckin):
		fail(c, http.StatusBadRequest, CodeFutureCheckin, err.Error())
	case errors.Is(err, tracker.ErrTreatmentArchived):
		fail(c, http.StatusBadRequest, CodeArchived, err.Error())
	case errors.Is(err, tracker.ErrInvalidDay), errors.Is(err, adherence.ErrInvalidWindow):
		fail(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, storage.ErrAlreadyExists):
		fail(c, http.StatusConflict, CodeConflict, err.Error())
	default:
		h.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
