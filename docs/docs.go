// Package docs registers the OpenAPI document of the storefront API with swag.
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
        "/cart": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Result"}}
                }
            }
        },
        "/cart/checkout": {
            "post": {
                "produces": ["application/json"],
                "summary": "Checkout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.checkoutResponse"}}
                }
            }
        },
        "/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add to cart",
                "parameters": [
                    {
                        "description": "Product",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.addItemRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Result"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/cart/items/{id}": {
            "delete": {
                "produces": ["application/json"],
                "summary": "Remove from cart",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Result"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "summary": "Health",
                "responses": {
                    "204": {"description": "No Content"},
                    "503": {"description": "Service Unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "all, garland or decor", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Product"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "api.addItemRequest": {
            "type": "object",
            "properties": {"product_id": {"type": "integer"}}
        },
        "api.checkoutResponse": {
            "type": "object",
            "properties": {
                "cart": {"$ref": "#/definitions/cart.View"},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/cart.Notice"}},
                "placed": {"type": "boolean"}
            }
        },
        "cart.Notice": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["success", "info"]},
                "message": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "cart.Result": {
            "type": "object",
            "properties": {
                "cart": {"$ref": "#/definitions/cart.View"},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/cart.Notice"}}
            }
        },
        "cart.View": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"$ref": "#/definitions/cart.ViewLine"}},
                "grand_total": {"type": "integer"},
                "item_count": {"type": "integer"},
                "total_quantity": {"type": "integer"},
                "state": {"type": "string", "enum": ["empty", "non_empty"]}
            }
        },
        "cart.ViewLine": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/catalog.Product"},
                "quantity": {"type": "integer"},
                "line_total": {"type": "integer"}
            }
        },
        "catalog.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "integer"},
                "category": {"type": "string", "enum": ["garland", "decor"]},
                "image": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "occasions": {"type": "array", "items": {"type": "string"}},
                "power": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8443",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lightshop API",
	Description:      "Storefront catalog and session cart",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
