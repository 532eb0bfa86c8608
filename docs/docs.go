// Package docs Spot Discovery API.
//
// Поиск спотов для автостопа, велотуризма, ван-лайфа и пеших походов,
// отзывы с агрегацией рейтингов, trust score и бейджи.
//
// Документ регистрируется в swag и отдаётся по /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "API Support"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "UserID": {"type": "apiKey", "name": "X-User-ID", "in": "header"}
    },
    "paths": {
        "/api/v1/health": {
            "get": {"tags": ["health"], "summary": "Состояние зависимостей", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/v1/spots": {
            "get": {
                "tags": ["spots"],
                "summary": "Поиск спотов",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "csv", "name": "transport_modes", "in": "query"},
                    {"type": "number", "name": "lat", "in": "query"},
                    {"type": "number", "name": "lon", "in": "query"},
                    {"type": "number", "name": "radius_km", "in": "query"},
                    {"type": "string", "name": "spot_type", "in": "query"},
                    {"type": "number", "name": "min_rating", "in": "query"},
                    {"type": "string", "name": "safety_priority", "in": "query"},
                    {"type": "boolean", "name": "use_preferences", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}
            },
            "post": {"tags": ["spots"], "summary": "Добавить спот", "security": [{"UserID": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/spots/{id}": {
            "get": {"tags": ["spots"], "summary": "Спот по ID", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["spots"], "summary": "Обновить спот", "security": [{"UserID": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/spots/{id}/verify": {
            "post": {"tags": ["spots"], "summary": "Подтвердить спот", "security": [{"UserID": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/spots/{id}/reviews": {
            "get": {"tags": ["reviews"], "summary": "Отзывы спота", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "transport_mode", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reviews"], "summary": "Оставить отзыв", "security": [{"UserID": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "202": {"description": "Отзыв сохранён, рейтинги будут пересчитаны"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/spots/{id}/stats": {
            "get": {"tags": ["reviews"], "summary": "Статистика отзывов", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/spots/{id}/ratings/recompute": {
            "post": {"tags": ["reviews"], "summary": "Пересчитать рейтинги спота", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/reviews/{id}/helpful": {
            "post": {"tags": ["reviews"], "summary": "Отметить отзыв полезным", "security": [{"UserID": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/profile": {
            "get": {"tags": ["profiles"], "summary": "Мой профиль", "security": [{"UserID": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["profiles"], "summary": "Создать профиль", "security": [{"UserID": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}},
            "patch": {"tags": ["profiles"], "summary": "Обновить профиль", "security": [{"UserID": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/users/{user_id}/profile": {
            "get": {"tags": ["profiles"], "summary": "Публичный профиль", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/users/{user_id}/trust-score": {
            "post": {"tags": ["trust"], "summary": "Пересчитать trust score", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/users/{user_id}/badges/evaluate": {
            "post": {"tags": ["trust"], "summary": "Выдать заслуженные бейджи", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/users/{user_id}/badges": {
            "get": {"tags": ["trust"], "summary": "Бейджи пользователя", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/users/{user_id}/vouch": {
            "post": {"tags": ["trust"], "summary": "Поручиться за пользователя", "security": [{"UserID": []}], "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Spot Discovery API",
	Description:      "Сервис поиска мест для автостопа, велотуризма, ван-лайфа и пеших походов.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
