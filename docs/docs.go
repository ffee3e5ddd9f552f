// Package docs registers the OpenAPI description served at /swagger/*.
// It mirrors the swag annotations on the handlers in internal/http/handler.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Store connectivity check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/handler.errorPayload"}
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "summary": "Liveness probe, 200 while the process is serving",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/restaurants": {
            "get": {
                "description": "Without sortBy every record is returned as stored. With sortBy the records are reduced to restaurant_id, cuisine, name and city and ordered by restaurant_id (DESC descending, anything else ascending).",
                "produces": ["application/json"],
                "summary": "List restaurants",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ASC or DESC",
                        "name": "sortBy",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Restaurant"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.errorPayload"}
                    }
                }
            }
        },
        "/restaurants/Delicatessen": {
            "get": {
                "produces": ["application/json"],
                "description": "The path segment is FIXED_CUISINE (default Delicatessen) and is matched case sensitively.",
                "summary": "List cuisine, name and city of the fixed cuisine outside the excluded city, ordered by name",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Restaurant"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.errorPayload"}
                    }
                }
            }
        },
        "/restaurants/cuisine/{cuisine}": {
            "get": {
                "produces": ["application/json"],
                "summary": "List restaurants of a cuisine",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Cuisine",
                        "name": "cuisine",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Restaurant"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.errorPayload"}
                    }
                }
            }
        },
        "/restaurants/{cuisine}": {
            "get": {
                "produces": ["application/json"],
                "summary": "List cuisine, name and city of a cuisine outside the excluded city, ordered by name",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Cuisine",
                        "name": "cuisine",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Restaurant"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.errorPayload"}
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.Address": {
            "type": "object",
            "properties": {
                "building": {"type": "string"},
                "street": {"type": "string"},
                "zipcode": {"type": "string"}
            }
        },
        "model.Restaurant": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "address": {"$ref": "#/definitions/model.Address"},
                "city": {"type": "string"},
                "cuisine": {"type": "string"},
                "name": {"type": "string"},
                "restaurant_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Restaurant API",
	Description:      "Read-only listings over a restaurant collection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
