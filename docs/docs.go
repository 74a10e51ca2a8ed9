// Package docs holds the OpenAPI document served under /swagger. Keep it in
// step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "API index",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.IndexResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CategoryListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create category",
                "parameters": [
                    {"description": "Category", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateCategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CategoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Update category",
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateCategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CategoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Tickets in the category keep existing without one.",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Delete category",
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DeleteCategoryResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/tickets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Admins see every ticket, other users only their own.",
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List tickets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TicketListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Create ticket",
                "parameters": [
                    {"description": "Ticket", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateTicketRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TicketResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/tickets/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Get ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TicketDetailResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Reporters may change title and description; other fields are ignored unless the caller is an admin.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Update ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateTicketRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TicketResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Delete ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DeleteTicketResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/tickets/{id}/timeline": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Events newest first. A missing ticket has an empty timeline.",
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Ticket timeline",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TimelineResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by id",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorBody": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"$ref": "#/definitions/errors.FieldError"}},
                "message": {"type": "string"},
                "statusCode": {"type": "integer"},
                "timestamp": {"type": "string"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.ErrorBody"}
            }
        },
        "errors.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "handler.CategoryListResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/model.Category"}}
            }
        },
        "handler.CategoryResponse": {
            "type": "object",
            "properties": {
                "category": {"$ref": "#/definitions/model.Category"}
            }
        },
        "handler.CreateCategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "color": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string", "maxLength": 100, "minLength": 1}
            }
        },
        "handler.CreateTicketRequest": {
            "type": "object",
            "required": ["description", "title"],
            "properties": {
                "categoryId": {"type": "string", "format": "uuid"},
                "description": {"type": "string", "minLength": 1},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "title": {"type": "string", "maxLength": 255, "minLength": 1}
            }
        },
        "handler.DeleteCategoryResponse": {
            "type": "object",
            "properties": {
                "category": {"$ref": "#/definitions/model.Category"},
                "message": {"type": "string"}
            }
        },
        "handler.DeleteTicketResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "ticket": {"$ref": "#/definitions/model.Ticket"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "uptime": {"type": "number"},
                "version": {"type": "string"}
            }
        },
        "handler.IndexResponse": {
            "type": "object",
            "properties": {
                "endpoints": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"},
                "name": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "maxLength": 255, "minLength": 2},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.TicketDetailResponse": {
            "type": "object",
            "properties": {
                "ticket": {"$ref": "#/definitions/model.TicketDetail"}
            }
        },
        "handler.TicketListResponse": {
            "type": "object",
            "properties": {
                "tickets": {"type": "array", "items": {"$ref": "#/definitions/model.TicketSummary"}}
            }
        },
        "handler.TicketResponse": {
            "type": "object",
            "properties": {
                "ticket": {"$ref": "#/definitions/model.Ticket"}
            }
        },
        "handler.TimelineResponse": {
            "type": "object",
            "properties": {
                "timeline": {"type": "array", "items": {"$ref": "#/definitions/model.TimelineEntry"}}
            }
        },
        "handler.UpdateCategoryRequest": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string", "maxLength": 100, "minLength": 1}
            }
        },
        "handler.UpdateTicketRequest": {
            "type": "object",
            "properties": {
                "assigneeId": {"type": "string", "format": "uuid"},
                "categoryId": {"type": "string", "format": "uuid"},
                "description": {"type": "string", "minLength": 1},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "status": {"type": "string", "enum": ["open", "in_progress", "resolved", "closed"]},
                "title": {"type": "string", "maxLength": 255, "minLength": 1}
            }
        },
        "handler.UserListResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "model.Category": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "model.Ticket": {
            "type": "object",
            "properties": {
                "assigneeId": {"type": "string"},
                "categoryId": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "priority": {"type": "string"},
                "reporterId": {"type": "string"},
                "status": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.TicketDetail": {
            "type": "object",
            "properties": {
                "assignee": {"$ref": "#/definitions/model.UserRef"},
                "assigneeId": {"type": "string"},
                "categoryColor": {"type": "string"},
                "categoryId": {"type": "string"},
                "categoryName": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "priority": {"type": "string"},
                "reporter": {"$ref": "#/definitions/model.UserRef"},
                "reporterId": {"type": "string"},
                "status": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.TicketSummary": {
            "type": "object",
            "properties": {
                "assigneeId": {"type": "string"},
                "categoryColor": {"type": "string"},
                "categoryId": {"type": "string"},
                "categoryName": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "priority": {"type": "string"},
                "reporterEmail": {"type": "string"},
                "reporterId": {"type": "string"},
                "reporterName": {"type": "string"},
                "status": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.TimelineEntry": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "newValue": {"type": "string"},
                "oldValue": {"type": "string"},
                "type": {"type": "string"},
                "userId": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.UserRef": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Ticket Report API",
	Description:      "Ticket tracking API with categories, an audit timeline and JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
