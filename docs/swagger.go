package docs

import "github.com/swaggo/swag"

// @title           TaskHub API
// @version         1.0
// @description     Multi-tenant project, task and invoicing API

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a session token

// @tag.name Auth
// @tag.description Login, logout and session introspection

// @tag.name Companies
// @tag.description Company and position management

// @tag.name Users
// @tag.description User management and per-company membership

// @tag.name Projects
// @tag.description Project management and membership

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Billing
// @tag.description Clients, invoices and payments

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
