package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CareBridge API",
        "description": "Shift scheduling and availability service for care agencies",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Sessions and tokens"},
        {"name": "Shifts", "description": "Shift views and responses"},
        {"name": "Availability", "description": "Caregiver availability editor"},
        {"name": "Timesheets", "description": "Worked hours"},
        {"name": "Invoices", "description": "Invoice generation"},
        {"name": "Participants", "description": "Care recipients and matching"},
        {"name": "Incidents", "description": "Incident reports"},
        {"name": "Certificates", "description": "Compliance documents"},
        {"name": "Messages", "description": "Worker inbox"},
        {"name": "Dashboard", "description": "Landing-page snapshot"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shifts/view": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Tabbed shifts view",
                "parameters": [
                    {"name": "tab", "in": "query", "type": "string", "enum": ["upcoming", "available", "completed"]},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/shifts/{id}/accept": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Accept an available shift",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Shift no longer available"}
                }
            }
        },
        "/shifts/{id}/decline": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Decline an available shift",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Shift no longer available"}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability by day",
                "parameters": [
                    {"name": "canonical", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/{date}": {
            "get": {
                "tags": ["Availability"],
                "summary": "Open one day in the availability editor",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/{date}/slots": {
            "post": {
                "tags": ["Availability"],
                "summary": "Add an availability slot",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid slot range"}
                }
            }
        },
        "/timesheets": {
            "get": {
                "tags": ["Timesheets"],
                "summary": "List timesheet entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Timesheets"],
                "summary": "Log hours",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/invoices/generate": {
            "post": {
                "tags": ["Invoices"],
                "summary": "Generate an invoice from timesheet entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No billable entries selected"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
