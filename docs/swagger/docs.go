// Package swagger holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/start.go -o docs/swagger
package swagger

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
        "/export/run": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Starts reconciling the given content types, or all of them. Progress is reported by the status endpoint.",
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Run Export",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated content types (e.g. shows,movies)",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Export Started",
                        "schema": {"type": "object", "additionalProperties": true}
                    },
                    "400": {
                        "description": "Unknown Content Type",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "409": {
                        "description": "Export Already Running",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/export/status": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Reports whether an export is running and the result of the last run.",
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Export Status",
                "responses": {
                    "200": {
                        "description": "Export Status",
                        "schema": {"$ref": "#/definitions/export.Status"}
                    }
                }
            }
        },
        "/integrity": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Performs the schema check and the media check of every content type. Objects are not verified in the bucket.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run All Integrity Checks",
                "responses": {
                    "200": {
                        "description": "Combined Report",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/integrity/media": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Lists media references that were not relocated. With verify, relocated objects are looked up in the bucket.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Media References",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated content types (movies, shows)",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Verify relocated objects exist",
                        "name": "verify",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Media Reports",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/checks.MediaReport"}}
                    },
                    "400": {
                        "description": "Unknown content type",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/integrity/schema": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Checks that every catalog table and column expected by the models exists.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Catalog Schema",
                "responses": {
                    "200": {
                        "description": "Schema Report",
                        "schema": {"$ref": "#/definitions/checks.SchemaReport"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "checks.Finding": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "field": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "checks.MediaReport": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string"},
                "records": {"type": "integer"},
                "references": {"type": "integer"},
                "relocated": {"type": "integer"},
                "transient": {"type": "integer"},
                "missing": {"type": "integer"},
                "verified": {"type": "boolean"},
                "transient_refs": {"type": "array", "items": {"$ref": "#/definitions/checks.Finding"}},
                "missing_refs": {"type": "array", "items": {"$ref": "#/definitions/checks.Finding"}}
            }
        },
        "checks.SchemaReport": {
            "type": "object",
            "properties": {
                "matched": {"type": "boolean"},
                "tables": {"type": "object", "additionalProperties": {"$ref": "#/definitions/checks.TableReport"}},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "checks.TableReport": {
            "type": "object",
            "properties": {
                "missing": {"type": "boolean"},
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"}
            }
        },
        "export.Status": {
            "type": "object",
            "properties": {
                "running": {"type": "boolean"},
                "types": {"type": "array", "items": {"type": "string"}},
                "last_run": {"$ref": "#/definitions/export.RunReport"}
            }
        },
        "export.RunReport": {
            "type": "object",
            "properties": {
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "duration": {"type": "integer"},
                "jobs": {"type": "array", "items": {"$ref": "#/definitions/export.JobReport"}}
            }
        },
        "export.JobReport": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "error": {"type": "string"},
                "summary": {"$ref": "#/definitions/reconcile.Summary"}
            }
        },
        "reconcile.Summary": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string"},
                "total": {"type": "integer"},
                "inserted": {"type": "integer"},
                "updated": {"type": "integer"},
                "skipped": {"type": "integer"},
                "started_at": {"type": "string"},
                "duration": {"type": "integer"},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Failure"}}
            }
        },
        "reconcile.Failure": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "key": {"type": "string"},
                "stage": {"type": "string"},
                "reason": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
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
	Title:            "Catalog Export API",
	Description:      "API for triggering, monitoring and checking catalog exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
