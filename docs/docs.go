// Package docs registers the OpenAPI description served at /swagger/index.html.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/AddEntry": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Add a sensor reading",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true},
                    {"description": "Reading payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AddEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.addEntryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/ActuatorData": {
            "get": {
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Actuator state for the device",
                "description": "The active override wins; otherwise the state is derived from the latest reading.",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.actuatorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/AppBasicData": {
            "get": {
                "produces": ["application/json"],
                "tags": ["app"],
                "summary": "Dashboard snapshot for the app",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/StatisticalData": {
            "get": {
                "produces": ["application/json"],
                "tags": ["app"],
                "summary": "Daily statistics",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true},
                    {"type": "integer", "example": 7, "description": "Window length in days", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/Override": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["app"],
                "summary": "Override the actuators",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true},
                    {"description": "Override payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.OverrideRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.statusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/RemoveOverride": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["app"],
                "summary": "Remove all overrides",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.countResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/RemoveEntries": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["operator"],
                "summary": "Request removal of all readings",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handlers.removalTicketResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/RemoveEntries/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["operator"],
                "summary": "Confirm or deny a removal request",
                "parameters": [
                    {"description": "Decision", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ConfirmRemovalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.countResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.statusResponse"}},
                    "500": {"description": "Denied", "schema": {"$ref": "#/definitions/handlers.countResponse"}}
                }
            }
        },
        "/admin/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["operator"],
                "summary": "Issue an operator token",
                "parameters": [
                    {"description": "Operator key", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.OperatorTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/BindPlantIdToken": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["app"],
                "summary": "Bind a push token to the plant",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true},
                    {"description": "Push token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.BindTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/Notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["app"],
                "summary": "List dispatched notifications",
                "parameters": [
                    {"type": "string", "description": "Plant identifier", "name": "Plant-Id", "in": "header", "required": true},
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["WATER_LEVEL_LOW", "SOIL_MOISTURE_LOW"], "type": "string", "description": "Notification reason", "name": "reason", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.statusResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handlers.AddEntryRequest": {
            "type": "object",
            "required": ["light_intensity", "soil_moisture", "water_level"],
            "properties": {
                "light_intensity": {"type": "integer", "example": 63},
                "soil_moisture": {"type": "integer", "example": 42},
                "water_level": {"type": "integer", "example": 80}
            }
        },
        "handlers.OverrideRequest": {
            "type": "object",
            "required": ["lamp_intensity_pct", "water_pump_on"],
            "properties": {
                "lamp_intensity_pct": {"type": "integer", "example": 80},
                "water_pump_on": {"type": "boolean", "example": true}
            }
        },
        "handlers.BindTokenRequest": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handlers.OperatorTokenRequest": {
            "type": "object",
            "required": ["operator_key"],
            "properties": {"operator_key": {"type": "string"}}
        },
        "handlers.ConfirmRemovalRequest": {
            "type": "object",
            "required": ["approve", "ticket"],
            "properties": {
                "approve": {"type": "boolean", "example": true},
                "ticket": {"type": "string"}
            }
        },
        "handlers.statusResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "handlers.countResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "response": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "handlers.addEntryResponse": {
            "type": "object",
            "properties": {
                "entry_count": {"type": "integer"},
                "response": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "handlers.actuatorResponse": {
            "type": "object",
            "properties": {
                "lamp_intensity_pct": {"type": "integer"},
                "override": {"type": "boolean"},
                "status": {"type": "integer"},
                "water_pump_on": {"type": "boolean"}
            }
        },
        "handlers.removalTicketResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "response": {"type": "string"},
                "status": {"type": "integer"},
                "ticket": {"type": "string"}
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
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Smart Plant API",
	Description:      "Sensor ingest, actuator control and notifications for smart plant pots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
