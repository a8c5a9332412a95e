// cmd/main.go
package main

import (
	"go-wallet-api/app"
)

// @title           Go-Wallet API
// @version         1.0
// @description     A minimal wallet API with atomic peer-to-peer transfers.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
