package main

import "os"

// @title                      Cafe POS API
// @version                    1.0
// @description                Point-of-sale and back-office API for multi-outlet cafes.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-API-Key
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
