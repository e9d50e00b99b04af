// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/v1/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "User id", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user with reputation and job counters",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/users/{id}/reputation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get the raw reputation score",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reputationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/users/{id}/reputation/percentage": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get completed/assigned jobs as a percentage",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.completionRateResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "parameters": [{"enum": ["open", "assigned", "completed", "disputed"], "type": "string", "description": "Filter by status", "name": "status", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listJobsResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Post a new job",
                "parameters": [
                    {"type": "string", "description": "Idempotency key to prevent duplicate submissions", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Job details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.postJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier request with the same key", "schema": {"$ref": "#/definitions/handler.postJobResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.postJobResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "An earlier request with the same key is still in progress", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/jobs/open": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List open jobs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listJobsResponse"}}
                }
            }
        },
        "/v1/jobs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get a job by id",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.jobResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/jobs/{id}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Override a job's status",
                "parameters": [
                    {"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/jobs/{id}/assign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Assign a freelancer to an open job",
                "parameters": [
                    {"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true},
                    {"description": "Freelancer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.assignJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/jobs/{id}/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Complete a job",
                "parameters": [{"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/jobs/{id}/disputes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Resolve a dispute for a user",
                "parameters": [
                    {"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true},
                    {"description": "Dispute outcome", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.resolveDisputeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handler.jobLinks": {"type": "object", "properties": {"self": {"type": "string"}}},
        "handler.registerUserRequest": {"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}},
        "handler.postJobRequest": {
            "type": "object",
            "required": ["client"],
            "properties": {
                "client": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "budget": {"type": "integer", "minimum": 0}
            }
        },
        "handler.setStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["open", "assigned", "completed", "disputed"]}}
        },
        "handler.assignJobRequest": {"type": "object", "required": ["freelancer"], "properties": {"freelancer": {"type": "string"}}},
        "handler.resolveDisputeRequest": {
            "type": "object",
            "required": ["outcome", "user_id"],
            "properties": {"user_id": {"type": "string"}, "outcome": {"type": "boolean"}}
        },
        "handler.postJobResponse": {
            "type": "object",
            "properties": {"job_id": {"type": "string"}, "status": {"type": "string"}, "_links": {"$ref": "#/definitions/handler.jobLinks"}}
        },
        "handler.jobResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "budget": {"type": "integer"},
                "client": {"type": "string"},
                "freelancer": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "_links": {"$ref": "#/definitions/handler.jobLinks"}
            }
        },
        "handler.listJobsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.jobResponse"}},
                "total": {"type": "integer"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "reputation": {"type": "integer"},
                "assigned_jobs": {"type": "integer"},
                "completed_jobs": {"type": "integer"}
            }
        },
        "handler.reputationResponse": {"type": "object", "properties": {"user_id": {"type": "string"}, "reputation": {"type": "integer"}}},
        "handler.completionRateResponse": {"type": "object", "properties": {"user_id": {"type": "string"}, "completion_rate": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marketplace API",
	Description:      "Users, jobs, job lifecycle and reputation for a freelance marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
