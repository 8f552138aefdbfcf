package echoServer

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore/app/echoServer/controller/auth"
	"bookstore/app/echoServer/controller/book"
	"bookstore/app/echoServer/controller/comment"
	"bookstore/app/echoServer/controller/payment"
	"bookstore/app/echoServer/controller/user"
	"bookstore/app/echoServer/jwtx"
	accesssvc "bookstore/service/access"
	booksvc "bookstore/service/book"
	jwtutil "bookstore/util/jwt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth    *auth.Controller
	Book    *book.Controller
	Comment *comment.Controller
	User    *user.Controller
	Payment *payment.Controller

	Books     booksvc.Service
	Access    accesssvc.Service
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth. Verification goes through jwtutil.ParseAuth so token handling
	// has a single home; jwtx reads the MapClaims it leaves in context.
	secret := c.JWTSecret
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(ec echo.Context, auth string) (interface{}, error) {
			return jwtutil.ParseAuth(auth, secret)
		},
		TokenLookup: "header:Authorization",
	}))

	// Users
	authed.GET("/users", c.User.List)
	authed.GET("/users/:id", c.User.Get)
	authed.PUT("/users/:id", c.User.Update)
	authed.DELETE("/users/:id", c.User.Delete)

	// Books
	authed.POST("/books", c.Book.Create)
	authed.GET("/books", c.Book.List)
	authed.GET("/books/:id", c.Book.Detail)
	authed.PUT("/books/:id", c.Book.Update)
	authed.DELETE("/books/:id", c.Book.Delete)
	authed.GET("/books/:id/content", c.Book.Content)

	// Comments: creation runs behind the book-access check
	authed.POST("/books/:bookId/comments", c.Comment.Create, bookAccess(c.Books, c.Access))
	authed.GET("/comments", c.Comment.List)
	authed.GET("/comments/:id", c.Comment.Get)
	authed.PUT("/comments/:id", c.Comment.Update)
	authed.DELETE("/comments/:id", c.Comment.Delete)

	// Payments
	authed.POST("/payments/intent", c.Payment.CreateIntent)
	authed.POST("/payments", c.Payment.Finalize)
	authed.GET("/payments/my", c.Payment.MyHistory)
}

// bookAccess admits admins and anyone holding an entitlement row on the
// book, expired or not. Expiry only matters on the content endpoint.
func bookAccess(books booksvc.Service, access accesssvc.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
			if err != nil || bookID <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
			}
			uid, err := jwtx.UserIDFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			roles, err := jwtx.RolesFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			ctx := c.Request().Context()
			if _, err := books.Detail(ctx, bookID); err != nil {
				if errors.Is(err, booksvc.ErrNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			if err := access.CommentAccess(ctx, roles, uid, bookID); err != nil {
				if accesssvc.Code(err) == accesssvc.ErrAccessDenied {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			return next(c)
		}
	}
}
