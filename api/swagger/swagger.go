package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Dashboard API",
        "description": "Backend for the school dashboard: paged student and teacher views synced with the remote collection store.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student list views and details"},
        {"name": "Teachers", "description": "Teacher list views and details"},
        {"name": "Preferences", "description": "Theme persistence"},
        {"name": "Auth", "description": "Login flag gating record routes"},
        {"name": "System", "description": "Probes and instrumentation"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Exposition"}
                }
            }
        },
        "/api/v1/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/preferences": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Current theme and login state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/preferences/theme": {
            "put": {
                "tags": ["Preferences"],
                "summary": "Set theme",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ThemeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/preferences/theme/toggle": {
            "post": {
                "tags": ["Preferences"],
                "summary": "Toggle theme",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Mark the dashboard as logged in",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Mark the dashboard as logged out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views": {
            "post": {
                "tags": ["Students"],
                "summary": "Mount a student list view",
                "responses": {
                    "202": {"description": "Loading", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Login required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views/{viewId}": {
            "get": {
                "tags": ["Students"],
                "summary": "Current page of a view",
                "parameters": [{"name": "viewId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Close a view",
                "parameters": [{"name": "viewId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Closed"},
                    "404": {"description": "Unknown view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views/{viewId}/filters": {
            "patch": {
                "tags": ["Students"],
                "summary": "Update filter criteria",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown criterion or value", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views/{viewId}/page": {
            "put": {
                "tags": ["Students"],
                "summary": "Change page",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views/{viewId}/records": {
            "post": {
                "tags": ["Students"],
                "summary": "Add a record through a view",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "View not ready", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Store rejected the write", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views/{viewId}/records/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Replace a record through a view",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Store rejected the write", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a record through a view",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Confirmation missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/views/{viewId}/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export the filtered and sorted records of a view",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Student detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Mount a teacher list view",
                "responses": {
                    "202": {"description": "Loading", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Login required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views/{viewId}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Current page of a view",
                "parameters": [{"name": "viewId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Close a view",
                "parameters": [{"name": "viewId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Closed"},
                    "404": {"description": "Unknown view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views/{viewId}/filters": {
            "patch": {
                "tags": ["Teachers"],
                "summary": "Update filter criteria",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown criterion or value", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views/{viewId}/page": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Change page",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views/{viewId}/records": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Add a record through a view",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Teacher"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "View not ready", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Store rejected the write", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views/{viewId}/records/{id}": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Replace a record through a view",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Teacher"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Store rejected the write", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete a record through a view",
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Confirmation missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/views/{viewId}/export": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Export the filtered and sorted records of a view",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "viewId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/api/v1/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Teacher detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "grade": {"type": "integer"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["male", "female"]},
                "rating": {"type": "number"},
                "coins": {"type": "integer"},
                "phone": {"type": "string"},
                "twitter": {"type": "string"},
                "linkedin": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "Teacher": {
            "type": "object",
            "required": ["name", "email", "subject"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["male", "female"]},
                "rating": {"type": "number"},
                "subject": {"type": "string"},
                "experience": {"type": "integer"},
                "phone": {"type": "string"},
                "twitter": {"type": "string"},
                "linkedin": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "FilterPatch": {
            "type": "object",
            "properties": {
                "search": {"type": "string"},
                "gender": {"type": "string", "enum": ["all", "male", "female"]},
                "rating": {"type": "string", "enum": ["all", "highest", "lowest"]},
                "criteria": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "PageRequest": {
            "type": "object",
            "properties": {
                "page": {"type": "integer", "minimum": 1},
                "direction": {"type": "string", "enum": ["next", "prev"]}
            }
        },
        "ThemeRequest": {
            "type": "object",
            "required": ["theme"],
            "properties": {
                "theme": {"type": "string", "enum": ["light", "dark"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "from": {"type": "integer"},
                "to": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
