// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login author",
                "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.AuthResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current author",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Author"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "description": "Tag (case-insensitive)", "name": "tag", "in": "query"},
                    {"type": "string", "description": "Post type", "name": "type", "in": "query"},
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "integer", "description": "Page size (default 10, max 200)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Posts to skip", "name": "skip", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.PostPage"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a post",
                "parameters": [{"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/entity.Post"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.Post"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/posts/author/{authorId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Posts by author",
                "parameters": [
                    {"type": "string", "description": "Author ID", "name": "authorId", "in": "path", "required": true},
                    {"type": "string", "description": "Post ID to leave out", "name": "exclude", "in": "query"},
                    {"type": "integer", "description": "Number of posts (default 4)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/id/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post by ID",
                "parameters": [{"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/posts/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Latest posts",
                "parameters": [{"type": "integer", "description": "Number of posts (default 10)", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/popular": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Popular posts",
                "parameters": [{"type": "integer", "description": "Number of posts (default 5)", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Search posts",
                "parameters": [{"type": "string", "description": "Search text", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/slug/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post by slug",
                "parameters": [{"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/posts/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/entity.PostPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Post"}},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a post",
                "parameters": [{"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/posts/{id}/related": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Related posts",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of posts (default 4)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/tags": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List tags",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/uploads/image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Upload an image",
                "parameters": [{"type": "file", "description": "Image file (jpg/png/webp/gif)", "name": "image", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "entity.Author": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "profileImage": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "entity.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string"},
                "type": {"type": "string", "enum": ["featured", "market-watch", "opinion", "latest", "exclusive", "analysis"]},
                "title": {"type": "string", "maxLength": 200},
                "excerpt": {"type": "string", "maxLength": 500},
                "content": {"type": "string"},
                "fullContent": {"type": "string"},
                "imageUrl": {"type": "string"},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "readTime": {"type": "integer"},
                "publishDate": {"type": "string"},
                "views": {"type": "integer"},
                "isDraft": {"type": "boolean"},
                "seoTitle": {"type": "string", "maxLength": 60},
                "seoDescription": {"type": "string", "maxLength": 160},
                "marketImpact": {"type": "string"},
                "dataPoints": {"type": "array", "items": {"type": "object", "properties": {"label": {"type": "string"}, "value": {"type": "string"}}}},
                "topic": {"type": "string"},
                "authorTitle": {"type": "string"},
                "commentsCount": {"type": "integer"}
            }
        },
        "entity.PostPage": {
            "type": "object",
            "properties": {
                "posts": {"type": "array", "items": {"$ref": "#/definitions/entity.Post"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "skip": {"type": "integer"}
            }
        },
        "entity.PostPatch": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "isDraft": {"type": "boolean"}
            }
        },
        "http.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/entity.Author"}
            }
        },
        "http.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Newsdesk API",
	Description:      "Content retrieval and engagement service for the newsroom site",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
