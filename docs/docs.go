// Package docs holds the OpenAPI document for the bank-core API
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}},
                    "503": {"description": "Dependency unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "tags": ["Health"],
                "summary": "Get API version",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VersionResponse"}}}
            }
        },
        "/api/auth/signin": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Customer sign-in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SignInRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Error during authentication", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Customer registration",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SignUpRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "400": {"description": "Validation failed or email in use", "schema": {"$ref": "#/definitions/http.ValidationErrorResponse"}},
                    "500": {"description": "Error during registration", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "Get current customer",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Customer"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/{collection}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Banking"],
                "summary": "List records (accounts, admins, branches, loans, transactions)",
                "produces": ["application/json"],
                "parameters": [{"name": "collection", "in": "path", "required": true, "type": "string", "enum": ["accounts", "admins", "branches", "loans", "transactions"]}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Banking"],
                "summary": "Create a record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "collection", "in": "path", "required": true, "type": "string", "enum": ["accounts", "admins", "branches", "loans", "transactions"]}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/{collection}/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Banking"],
                "summary": "Get a record by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "collection", "in": "path", "required": true, "type": "string", "enum": ["accounts", "admins", "branches", "loans", "transactions"]},
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Banking"],
                "summary": "Delete a record",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "collection", "in": "path", "required": true, "type": "string", "enum": ["accounts", "admins", "branches", "loans", "transactions"]},
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}}}
            }
        }
    },
    "definitions": {
        "domain.SignInRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "domain.SignUpRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "phone": {"type": "string"},
                "date_of_birth": {"type": "string", "example": "1990-01-01"}
            }
        },
        "domain.Customer": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "date_of_birth": {"type": "string", "example": "1990-01-01"},
                "created_at": {"type": "string"}
            }
        },
        "domain.AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/domain.Customer"}}
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "Invalid JWT token"}}
        },
        "http.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "User registered successfully"}}
        },
        "http.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "error"},
                "message": {"type": "string", "example": "Validation failed"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "http.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "ok"}}
        },
        "http.VersionResponse": {
            "type": "object",
            "properties": {"version": {"type": "string", "example": "1.0.0"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Bank Core API",
	Description:      "Bank back office API: customer signup and sign-in with JWT sessions, plus accounts, admins, branches, loans and transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
