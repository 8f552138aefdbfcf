package payment

import (
	"errors"
	"log/slog"
	"net/http"

	"bookstore/app/echoServer/jwtx"
	"bookstore/model"
	paymentsvc "bookstore/service/payment"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/payments/intent
// @Summary      Create a payment intent
// @Description  Validates availability and opens a gateway intent; nothing is persisted yet
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body  IntentReq  true  "Intent payload"
// @Success      200  {object}  paymentsvc.IntentCreated
// @Failure      400  {object}  map[string]any "transaction type not available"
// @Failure      404  {object}  map[string]any
// @Router       /v1/payments/intent [post]
func (h *Controller) CreateIntent(c echo.Context) error {
	var req IntentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	out, err := h.Svc.CreateIntent(c.Request().Context(), req.BookID, model.EntitlementKind(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, paymentsvc.ErrBookNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case errors.Is(err, paymentsvc.ErrNotAvailable), errors.Is(err, paymentsvc.ErrUnknownKind):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "book not available for this type of transaction"})
		}
		h.Log.Error("payment intent error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/payments
func (h *Controller) Finalize(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req FinalizeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	p, err := h.Svc.Finalize(c.Request().Context(), uid, req.BookID, req.PaymentID, model.EntitlementKind(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, paymentsvc.ErrBookNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case errors.Is(err, paymentsvc.ErrUnknownKind):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown transaction type"})
		case errors.Is(err, paymentsvc.ErrNotSucceeded):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "payment has not succeeded"})
		}
		h.Log.Error("payment finalize error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, p)
}

// GET /v1/payments/my
func (h *Controller) MyHistory(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.History(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("payment history error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
