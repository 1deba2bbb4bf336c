// Package docs holds the OpenAPI document served at /swagger/*any.
//
// Keep it in step with the handler annotations in internal/transport/http/gin.
// Regenerate with: swag init -g cmd/courtbook/main.go -o docs
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
        "/admin/reconcile": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Repair slot flags that disagree with bookings",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/booking.ReconcileReport"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/bookings": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "bookings"
                ],
                "summary": "Book a court slot (idempotent)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "client key",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "payload",
                        "name": "req",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httpgin.CreateBookingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Booking"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "slot booked / idem in progress",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "idempotency key reused",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "rate limited",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/bookings/{id}/cancel": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "bookings"
                ],
                "summary": "Cancel a booking",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Booking ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Booking"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "not active",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/courts/{id}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "courts"
                ],
                "summary": "Delete court of an owned facility",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Court ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "409": {
                        "description": "active bookings",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/courts/{id}/events": {
            "get": {
                "produces": [
                    "text/event-stream"
                ],
                "tags": [
                    "courts"
                ],
                "summary": "Live changes of a court (server-sent events)",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Court ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/courts/{id}/schedule": {
            "get": {
                "tags": [
                    "courts"
                ],
                "summary": "Court schedule grouped by weekday",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Court ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.CourtSchedule"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/courts/{id}/slots": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "courts"
                ],
                "summary": "Save the enabled slots of a court",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Court ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "req",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httpgin.SaveSlotsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httpgin.SaveSlotsResponse"
                        }
                    },
                    "409": {
                        "description": "booked slot removed",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/courts/{id}/slots/edit": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "courts"
                ],
                "summary": "Slot edit model of a court",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Court ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httpgin.EditModelResponse"
                        }
                    }
                }
            }
        },
        "/facilities": {
            "get": {
                "tags": [
                    "facilities"
                ],
                "summary": "List facilities with court and free slot counts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.FacilitySummary"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "facilities"
                ],
                "summary": "Create facility with courts and slots",
                "parameters": [
                    {
                        "description": "payload",
                        "name": "req",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httpgin.FacilityRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/httpgin.CreateFacilityResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/facilities/{id}": {
            "get": {
                "tags": [
                    "facilities"
                ],
                "summary": "Get facility with its courts",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Facility ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.FacilityDetails"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "facilities"
                ],
                "summary": "Update owned facility",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Facility ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "req",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httpgin.FacilityRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "booked slot removed",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "facilities"
                ],
                "summary": "Delete owned facility",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Facility ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "409": {
                        "description": "active bookings",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/facilities/{id}/claim": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "facilities"
                ],
                "summary": "Claim a facility stored without owner",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Facility ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "claims disabled",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "already owned",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/grid": {
            "get": {
                "tags": [
                    "courts"
                ],
                "summary": "Canonical slot grid",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Weekday name, whole week when empty",
                        "name": "day",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/query.GridDay"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/me/bookings": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "me"
                ],
                "summary": "My bookings, newest first",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.BookingDetails"
                            }
                        }
                    }
                }
            }
        },
        "/me/facilities": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "me"
                ],
                "summary": "List my facilities",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Facility"
                            }
                        }
                    }
                }
            }
        },
        "/me/facility-bookings": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "me"
                ],
                "summary": "Bookings at my facilities",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.BookingDetails"
                            }
                        }
                    }
                }
            }
        },
        "/me/profile": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "me"
                ],
                "summary": "My profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.User"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "me"
                ],
                "summary": "Update my profile",
                "parameters": [
                    {
                        "description": "profile",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httpgin.ProfileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.User"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/uploads/images": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "tags": [
                    "uploads"
                ],
                "summary": "Upload a facility or court image",
                "parameters": [
                    {
                        "type": "file",
                        "description": "image",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/httpgin.UploadResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/httpgin.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "booking.ReconcileReport": {
            "type": "object",
            "properties": {
                "claimed": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "released": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            }
        },
        "domain.Booking": {
            "type": "object",
            "properties": {
                "booking_time": {
                    "type": "string",
                    "format": "date-time"
                },
                "court_slot_id": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "id": {
                    "type": "integer"
                },
                "status": {
                    "type": "boolean"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "domain.BookingDetails": {
            "type": "object",
            "properties": {
                "booking": {
                    "$ref": "#/definitions/domain.Booking"
                },
                "court": {
                    "$ref": "#/definitions/domain.Court"
                },
                "facility": {
                    "$ref": "#/definitions/domain.Facility"
                },
                "label": {
                    "type": "string"
                },
                "next": {
                    "$ref": "#/definitions/domain.Projection"
                },
                "slot": {
                    "$ref": "#/definitions/domain.CourtSlot"
                },
                "user": {
                    "$ref": "#/definitions/domain.UserSummary"
                }
            }
        },
        "domain.Court": {
            "type": "object",
            "properties": {
                "court_name": {
                    "type": "string"
                },
                "court_type": {
                    "$ref": "#/definitions/domain.CourtType"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "facility_id": {
                    "type": "integer"
                },
                "id": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                }
            }
        },
        "domain.CourtSchedule": {
            "type": "object",
            "properties": {
                "court": {
                    "$ref": "#/definitions/domain.Court"
                },
                "days": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.ScheduleDay"
                    }
                }
            }
        },
        "domain.CourtSlot": {
            "type": "object",
            "properties": {
                "court_id": {
                    "type": "integer"
                },
                "day_of_week": {
                    "$ref": "#/definitions/domain.Weekday"
                },
                "end_time": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "is_booked": {
                    "type": "boolean"
                },
                "start_time": {
                    "type": "string"
                }
            }
        },
        "domain.CourtSummary": {
            "type": "object",
            "properties": {
                "available_slots": {
                    "type": "integer"
                },
                "court": {
                    "$ref": "#/definitions/domain.Court"
                },
                "total_slots": {
                    "type": "integer"
                }
            }
        },
        "domain.CourtType": {
            "type": "string",
            "enum": [
                "Indoor",
                "Outdoor"
            ],
            "x-enum-varnames": [
                "CourtIndoor",
                "CourtOutdoor"
            ]
        },
        "domain.Facility": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "owner_id": {
                    "type": "string"
                }
            }
        },
        "domain.FacilityDetails": {
            "type": "object",
            "properties": {
                "courts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CourtSummary"
                    }
                },
                "facility": {
                    "$ref": "#/definitions/domain.Facility"
                }
            }
        },
        "domain.FacilitySummary": {
            "type": "object",
            "properties": {
                "available_slots": {
                    "type": "integer"
                },
                "court_count": {
                    "type": "integer"
                },
                "facility": {
                    "$ref": "#/definitions/domain.Facility"
                }
            }
        },
        "domain.Period": {
            "type": "string",
            "enum": [
                "Morning",
                "Afternoon",
                "Evening",
                "Night"
            ],
            "x-enum-varnames": [
                "Morning",
                "Afternoon",
                "Evening",
                "Night"
            ]
        },
        "domain.Projection": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "format": "date-time"
                },
                "iso_key": {
                    "type": "string"
                },
                "long_label": {
                    "type": "string"
                },
                "short_label": {
                    "type": "string"
                }
            }
        },
        "domain.ScheduleDay": {
            "type": "object",
            "properties": {
                "day": {
                    "$ref": "#/definitions/domain.Weekday"
                },
                "next": {
                    "$ref": "#/definitions/domain.Projection"
                },
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CourtSlot"
                    }
                }
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "bio": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "email": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "phone_number": {
                    "type": "string"
                }
            }
        },
        "domain.UserSummary": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "domain.Weekday": {
            "type": "string",
            "enum": [
                "Monday",
                "Tuesday",
                "Wednesday",
                "Thursday",
                "Friday",
                "Saturday",
                "Sunday"
            ],
            "x-enum-varnames": [
                "Monday",
                "Tuesday",
                "Wednesday",
                "Thursday",
                "Friday",
                "Saturday",
                "Sunday"
            ]
        },
        "httpgin.CourtRequest": {
            "type": "object",
            "properties": {
                "court_name": {
                    "type": "string"
                },
                "court_type": {
                    "$ref": "#/definitions/domain.CourtType"
                },
                "id": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/slotgrid.Key"
                    }
                }
            }
        },
        "httpgin.CreateBookingRequest": {
            "type": "object",
            "required": [
                "slot_id"
            ],
            "properties": {
                "slot_id": {
                    "type": "integer"
                }
            }
        },
        "httpgin.CreateFacilityResponse": {
            "type": "object",
            "properties": {
                "facility_id": {
                    "type": "integer"
                }
            }
        },
        "httpgin.EditEntry": {
            "type": "object",
            "properties": {
                "day": {
                    "$ref": "#/definitions/domain.Weekday"
                },
                "end_time": {
                    "type": "string"
                },
                "locked": {
                    "type": "boolean"
                },
                "period": {
                    "$ref": "#/definitions/domain.Period"
                },
                "selected": {
                    "type": "boolean"
                },
                "slot_id": {
                    "type": "integer"
                },
                "start_time": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                }
            }
        },
        "httpgin.EditModelResponse": {
            "type": "object",
            "properties": {
                "court": {
                    "$ref": "#/definitions/domain.Court"
                },
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httpgin.EditEntry"
                    }
                },
                "orphans": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CourtSlot"
                    }
                }
            }
        },
        "httpgin.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "httpgin.FacilityRequest": {
            "type": "object",
            "properties": {
                "courts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httpgin.CourtRequest"
                    }
                },
                "description": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "httpgin.ProfileRequest": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "bio": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "phone_number": {
                    "type": "string"
                }
            }
        },
        "httpgin.SaveSlotsRequest": {
            "type": "object",
            "required": [
                "slots"
            ],
            "properties": {
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/slotgrid.Key"
                    }
                }
            }
        },
        "httpgin.SaveSlotsResponse": {
            "type": "object",
            "properties": {
                "deleted": {
                    "type": "integer"
                },
                "inserted": {
                    "type": "integer"
                }
            }
        },
        "httpgin.UploadResponse": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                }
            }
        },
        "query.GridDay": {
            "type": "object",
            "properties": {
                "day": {
                    "$ref": "#/definitions/domain.Weekday"
                },
                "periods": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/query.PeriodSlots"
                    }
                }
            }
        },
        "query.PeriodSlots": {
            "type": "object",
            "properties": {
                "period": {
                    "$ref": "#/definitions/domain.Period"
                },
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/slotgrid.Slot"
                    }
                }
            }
        },
        "slotgrid.Key": {
            "type": "object",
            "properties": {
                "day": {
                    "$ref": "#/definitions/domain.Weekday"
                },
                "end_time": {
                    "type": "string"
                },
                "start_time": {
                    "type": "string"
                }
            }
        },
        "slotgrid.Slot": {
            "type": "object",
            "properties": {
                "day": {
                    "$ref": "#/definitions/domain.Weekday"
                },
                "end_time": {
                    "type": "string"
                },
                "period": {
                    "$ref": "#/definitions/domain.Period"
                },
                "start_time": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Courtbook API",
	Description:      "Sports facility listings, weekly court slots and bookings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
