package router

import (
	"go-wallet-api/handler"
	"go-wallet-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-wallet-api/docs"
)

func NewRouter(userHandler *handler.UserHandler, accountHandler *handler.AccountHandler, authService *service.AuthService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /api/v1/user/signup", handler.ErrorHandlingMiddleware(userHandler.Signup))
	mux.Handle("POST /api/v1/user/signin", handler.ErrorHandlingMiddleware(userHandler.Signin))
	mux.Handle("GET /api/v1/user/bulk", handler.ErrorHandlingMiddleware(userHandler.Search))

	auth := handler.AuthMiddleware(authService)
	mux.Handle("PUT /api/v1/user", auth(handler.ErrorHandlingMiddleware(userHandler.Update)))
	mux.Handle("GET /api/v1/account/balance", auth(handler.ErrorHandlingMiddleware(accountHandler.GetBalance)))
	mux.Handle("POST /api/v1/account/transfer", auth(handler.ErrorHandlingMiddleware(accountHandler.Transfer)))

	return handler.RequestIDMiddleware(mux)
}
