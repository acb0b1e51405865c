// Package docs registers the OpenAPI document served under /swagger/.
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
        "/events": {
            "get": {
                "description": "Returns events filtered by a case-insensitive search over title, description and venue, and by period, sorted by date ascending.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Substring to match (case-insensitive)", "name": "search", "in": "query"},
                    {"type": "string", "description": "upcoming, today or this-week", "name": "period", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains items and pagination", "schema": {"$ref": "#/definitions/controllers.ListEventsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "description": "Validates and stores a new event organised by the acting user. Duration defaults to \"2 hours\". Every field violation is listed in error.fields.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event data", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created event", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request or validation_failed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "description": "Clears the store and persists the empty collection.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Remove every event",
                "responses": {
                    "200": {"description": "data.removed is the number of events deleted", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "description": "Returns the event with the acting user's RSVP status (pending when they have not responded) and the number of confirmed guests.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventDetailSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/countdown": {
            "get": {
                "description": "Returns the days, hours, minutes and seconds until the event starts, or started=true once it has begun.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Time until an event starts",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.CountdownSuccessResponse"}},
                    "400": {"description": "error.code: bad_request (unreadable start)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/ics": {
            "get": {
                "description": "Returns a text/calendar document with one VEVENT; confirmed guests are listed as attendees.",
                "produces": ["text/calendar"],
                "tags": ["events"],
                "summary": "Export an event as iCalendar",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "VCALENDAR document", "schema": {"type": "string"}},
                    "400": {"description": "error.code: bad_request (unreadable start)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/rsvp": {
            "put": {
                "description": "Sets the acting user's status to confirmed or declined. An existing response is updated in place; otherwise the user is appended to the guest list.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "Record the acting user's RSVP",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true},
                    {"description": "confirmed or declined", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SetRSVPRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.RSVPSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/rsvp/toggle": {
            "post": {
                "description": "No response becomes confirmed; confirmed and declined swap.",
                "produces": ["application/json"],
                "tags": ["rsvp"],
                "summary": "Toggle the acting user's RSVP",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.RSVPSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/invitations": {
            "post": {
                "description": "A single address is sent directly and its failure is reported as the response error (invalid_email or send_failed). Several addresses are sent one by one; data.failed lists the ones that were invalid or could not be delivered.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "Invite people to an event by email",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true},
                    {"description": "Addresses and optional message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SendInvitationsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SendInvitationsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request or invalid_email", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: send_failed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "description": "Counts of events hosted, attended (confirmed) and upcoming, plus the first five hosted and attending events in stored order.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Analytics for the acting user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.DashboardSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string", "example": "2026-10-18"},
                "time": {"type": "string", "example": "14:30"},
                "venue": {"type": "string"},
                "duration": {"type": "string", "example": "2 hours"}
            }
        },
        "controllers.SetRSVPRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["confirmed", "declined"]}
            }
        },
        "controllers.SendInvitationsRequest": {
            "type": "object",
            "properties": {
                "emails": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ListEventsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                        "pagination": {"$ref": "#/definitions/helpers.PaginationMeta"}
                    }
                },
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventDetailSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "event": {"$ref": "#/definitions/domain.Event"},
                        "myStatus": {"type": "string", "enum": ["confirmed", "declined", "pending"]},
                        "confirmedCount": {"type": "integer"}
                    }
                },
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.CountdownSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Countdown"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.RSVPSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "event": {"$ref": "#/definitions/domain.Event"},
                        "status": {"type": "string"}
                    }
                },
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.SendInvitationsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "sent": {"type": "integer"},
                        "failed": {"type": "array", "items": {"type": "string"}}
                    }
                },
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.DashboardSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Analytics"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.Guest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "status": {"type": "string", "enum": ["confirmed", "declined"]},
                "rsvpDate": {"type": "string", "format": "date-time"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "venue": {"type": "string"},
                "duration": {"type": "string"},
                "organizer": {"type": "string"},
                "guests": {"type": "array", "items": {"$ref": "#/definitions/domain.Guest"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "domain.Countdown": {
            "type": "object",
            "properties": {
                "days": {"type": "integer"},
                "hours": {"type": "integer"},
                "minutes": {"type": "integer"},
                "seconds": {"type": "integer"},
                "started": {"type": "boolean"}
            }
        },
        "domain.Analytics": {
            "type": "object",
            "properties": {
                "eventsHosted": {"type": "integer"},
                "eventsAttended": {"type": "integer"},
                "upcomingEvents": {"type": "integer"},
                "hostedEvents": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "attendingEvents": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}
            }
        },
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldError"}}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "helpers.PaginationMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Optional HS256 token; its subject replaces the session user.",
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
	Schemes:          []string{},
	Title:            "Event Planner API",
	Description:      "Create events, RSVP, invite guests by email and follow your own dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
