// Package main bookstore API.
//
// @title           Bookstore API
// @version         1.0
// @description     Digital bookstore/rental platform (users, books, comments, payments).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"bookstore/app/echoServer"
	authctrl "bookstore/app/echoServer/controller/auth"
	bookctrl "bookstore/app/echoServer/controller/book"
	commentctrl "bookstore/app/echoServer/controller/comment"
	paymentctrl "bookstore/app/echoServer/controller/payment"
	userctrl "bookstore/app/echoServer/controller/user"
	"bookstore/app/echoServer/validation"
	"bookstore/config"
	bookrepo "bookstore/repository/book"
	commentrepo "bookstore/repository/comment"
	entitlementrepo "bookstore/repository/entitlement"
	paymentrepo "bookstore/repository/payment"
	striperepo "bookstore/repository/stripe"
	userrepo "bookstore/repository/user"
	accesssvc "bookstore/service/access"
	authsvc "bookstore/service/auth"
	booksvc "bookstore/service/book"
	commentsvc "bookstore/service/comment"
	paymentsvc "bookstore/service/payment"
	usersvc "bookstore/service/user"
	"bookstore/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	cr := commentrepo.New(db)
	pr := paymentrepo.New(db)
	er := entitlementrepo.New(db)
	gw := striperepo.NewHTTP(cfg.StripeAPIKey)

	// services
	acs := accesssvc.New(er)
	as := authsvc.New(ur, cfg.JWTSecret)
	us := usersvc.New(ur)
	bs := booksvc.New(br, er, acs)
	cs := commentsvc.New(cr)
	ps := paymentsvc.New(db, br, pr, er, gw)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	commentC := &commentctrl.Controller{Svc: cs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Comment: commentC,
		User:    userC,
		Payment: paymentC,

		Books:     bs,
		Access:    acs,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
