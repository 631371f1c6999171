package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Event Spotlight API",
        "description": "Event submission, draft persistence and review portal",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Submissions", "description": "Public event submission and validation"},
        {"name": "Drafts", "description": "Per-session form draft persistence"},
        {"name": "Events", "description": "Admin dashboard event management"},
        {"name": "Content", "description": "Generated marketing copy review"},
        {"name": "Exports", "description": "Event listing downloads"}
    ],
    "paths": {
        "/events": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a school event",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "X-Draft-Session", "in": "header", "type": "string"},
                    {"name": "name", "in": "formData", "required": true, "type": "string"},
                    {"name": "event_date", "in": "formData", "required": true, "type": "string"},
                    {"name": "time_range", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "required": true, "type": "string"},
                    {"name": "school_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "contact_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "contact_email", "in": "formData", "required": true, "type": "string"},
                    {"name": "audience", "in": "formData", "required": true, "type": "string"},
                    {"name": "image", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate or in-flight submission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/validate": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Validate a submission payload",
                "parameters": [
                    {"name": "mode", "in": "query", "type": "string", "description": "partial (default) or gating"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitEventForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/drafts/{sessionID}": {
            "get": {
                "tags": ["Drafts"],
                "summary": "Restore a draft",
                "parameters": [
                    {"name": "sessionID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Drafts"],
                "summary": "Save a draft",
                "parameters": [
                    {"name": "sessionID", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveDraftRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            },
            "delete": {
                "tags": ["Drafts"],
                "summary": "Discard a draft",
                "parameters": [
                    {"name": "sessionID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "school", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/events/{id}/status": {
            "patch": {
                "tags": ["Events"],
                "summary": "Advance event status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEventStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Illegal transition", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/events/{id}/content": {
            "get": {
                "tags": ["Content"],
                "summary": "Get generated content for an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Template not generated yet", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/content/pending": {
            "get": {
                "tags": ["Content"],
                "summary": "List templates awaiting review",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/content/{id}/review": {
            "post": {
                "tags": ["Content"],
                "summary": "Record a review verdict",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewContentRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/exports/events.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export events as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/admin/exports/events.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export events as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        }
    },
    "definitions": {
        "EventRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "event_date": {"type": "string"},
                "time_range": {"type": "string"},
                "description": {"type": "string"},
                "school_name": {"type": "string"},
                "contact_name": {"type": "string"},
                "contact_email": {"type": "string"},
                "audience": {"type": "string"},
                "location": {"type": "string"},
                "estimated_attendance": {"type": "integer"},
                "image_url": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "SubmitEventForm": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "event_date": {"type": "string"},
                "time_range": {"type": "string"},
                "description": {"type": "string"},
                "school_name": {"type": "string"},
                "contact_name": {"type": "string"},
                "contact_email": {"type": "string"},
                "audience": {"type": "string"},
                "location": {"type": "string"},
                "estimated_attendance": {"type": "integer"},
                "participants": {"type": "string"},
                "key_highlights": {"type": "string"},
                "special_guests": {"type": "string"},
                "notable_achievements": {"type": "string"},
                "image_permission": {"type": "boolean"},
                "suggested_caption": {"type": "string"},
                "content_highlight": {"type": "string"},
                "message_tone": {"type": "string"}
            },
            "required": ["name", "event_date", "description", "school_name", "contact_name", "contact_email", "audience"]
        },
        "SaveDraftRequest": {
            "type": "object",
            "properties": {
                "values": {"type": "object"}
            }
        },
        "UpdateEventStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            },
            "required": ["status"]
        },
        "ReviewContentRequest": {
            "type": "object",
            "properties": {
                "verdict": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["verdict"]
        },
        "ContentTemplate": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "event_id": {"type": "string"},
                "social_post": {"type": "string"},
                "press_release": {"type": "string"},
                "newsletter_blurb": {"type": "string"},
                "review_status": {"type": "string"},
                "reviewer_notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
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
