// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/main.go`.
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
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List users (admin only)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Sign up a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/admins": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Sign up an admin",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Log in and receive a bearer token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Revoke the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/surveys": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "List survey summaries, newest first",
                "parameters": [{"type": "string", "description": "Only surveys of this user", "name": "ownerId", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Create a survey",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SurveyDraft"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/surveys/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Fetch a survey with its questions and responses",
                "parameters": [{"type": "string", "description": "Survey id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["surveys"],
                "summary": "Delete a survey and its responses",
                "parameters": [{"type": "string", "description": "Survey id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/surveys/{id}/responses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Submit a response",
                "parameters": [
                    {"type": "string", "description": "Survey id", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.ResponseSubmission"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/surveys/{id}/results": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Aggregate answer counts per question",
                "parameters": [{"type": "string", "description": "Survey id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        },
        "/responses/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["responses"],
                "summary": "Delete one response",
                "parameters": [{"type": "string", "description": "Response id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/envelope.Response"}}
                }
            }
        }
    },
    "definitions": {
        "envelope.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "error"]},
                "data": {},
                "kind": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.SignupRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "kind": {"type": "string", "enum": ["user", "admin"]}
            }
        },
        "model.Question": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "type": {"type": "string", "enum": ["multiple-choice", "checkbox", "text"]},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.SurveyDraft": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "ownerId": {"type": "string"},
                "ownerName": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/model.Question"}}
            }
        },
        "model.ResponseSubmission": {
            "type": "object",
            "properties": {
                "respondent": {"type": "string"},
                "answers": {"type": "array", "items": {}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "SurveyHub API",
	Description:      "Create surveys, collect responses and watch results live.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
