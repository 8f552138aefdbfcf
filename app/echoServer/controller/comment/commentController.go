package comment

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"bookstore/app/echoServer/jwtx"
	"bookstore/app/echoServer/validation"
	commentsvc "bookstore/service/comment"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc commentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func pageParams(c echo.Context) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// POST /v1/books/:bookId/comments  (book access checked by middleware)
func (h *Controller) Create(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req CommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.Fields(err)})
	}
	cm, err := h.Svc.Create(c.Request().Context(), uid, bookID, req.Description)
	if err != nil {
		if errors.Is(err, commentsvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		}
		h.Log.Error("comment create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "new comment created", "comment": cm})
}

// GET /v1/comments
func (h *Controller) List(c echo.Context) error {
	limit, offset := pageParams(c)
	rows, err := h.Svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		h.Log.Error("comment list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/comments/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, commentsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		}
		h.Log.Error("comment get error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// PUT /v1/comments/:id  (admin or comment author)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	roles, err := jwtx.RolesFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req CommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	row, err := h.Svc.Update(c.Request().Context(), uid, roles, id, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, commentsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		case errors.Is(err, commentsvc.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied"})
		}
		h.Log.Error("comment update error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /v1/comments/:id  (admin or comment author)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	roles, err := jwtx.RolesFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, roles, id); err != nil {
		switch {
		case errors.Is(err, commentsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		case errors.Is(err, commentsvc.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied"})
		}
		h.Log.Error("comment delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted successfully"})
}
