// Package docs holds the OpenAPI description served at /swagger/.
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
        "/games": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Список сохранённых матчей",
                "responses": {
                    "200": {"description": "Сохранённые матчи", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/games/{gameID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Сохранённый матч",
                "parameters": [{"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Матч", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/games/{gameID}/resume": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Продолжить сохранённый матч",
                "parameters": [{"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Матч снова идёт", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Уже идёт другой матч", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/games/{gameID}/actions/{actionID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Исправить действие в сохранённом матче",
                "parameters": [
                    {"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true},
                    {"type": "string", "description": "Action ID", "name": "actionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Матч после правки (без изменений, если действия нет)", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/games/{gameID}/export": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Выгрузить статистику матча в хранилище",
                "parameters": [{"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Ссылки на TXT и PNG", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Ошибка хранилища", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
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
	Title:            "Match Tagger API",
	Description:      "Manual football match tagging: rosters, action catalog, live event log, statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
