package main

// @title EcoScan API
// @version 1.0
// @description Product sustainability lookup with favorites and search history
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name ecoscan.sid
// @description Session cookie set by /api/register and /api/login.

// @tag.name Auth
// @tag.description Registration, login and the current session

// @tag.name Products
// @tag.description Barcode lookup, search and greener alternatives

// @tag.name Favorites
// @tag.description Saved products of the session user

// @tag.name Search History
// @tag.description Recent searches of the session user

// @tag.name Health
// @tag.description Health check endpoints
