// Package docs registers the swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/explore/state": {"get": {"tags": ["Explore"], "summary": "获取 Explore 状态", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/me": {"get": {"tags": ["Explore"], "summary": "当前用户", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/feed": {"get": {"tags": ["Explore"], "summary": "动态时间线（倒序）", "parameters": [{"type": "string", "default": "all", "name": "scope", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/trending": {"get": {"tags": ["Explore"], "summary": "热门动态", "parameters": [{"type": "integer", "default": 3, "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/post-counts": {"get": {"tags": ["Explore"], "summary": "用户动态数", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/suggestions": {"get": {"tags": ["关系链"], "summary": "推荐关注", "parameters": [{"type": "integer", "default": 5, "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/notifications": {"get": {"tags": ["Explore"], "summary": "通知列表", "parameters": [{"type": "integer", "default": 20, "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/reset": {"post": {"tags": ["Explore"], "summary": "重置 Explore 数据", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/follows/{user_id}/toggle": {"post": {"tags": ["关系链"], "summary": "切换关注", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/explore/posts": {"post": {"tags": ["动态"], "summary": "发布动态", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/explore/posts/{post_id}/like": {"post": {"tags": ["动态"], "summary": "切换点赞", "parameters": [{"type": "string", "name": "post_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/posts/{post_id}/reactions": {"post": {"tags": ["动态"], "summary": "切换表情", "parameters": [{"type": "string", "name": "post_id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"emoji": {"type": "string"}}, "required": ["emoji"]}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/explore/posts/{post_id}/comments": {"post": {"tags": ["动态"], "summary": "发表评论", "parameters": [{"type": "string", "name": "post_id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"text": {"type": "string"}}}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/explore/conversations": {"get": {"tags": ["私信"], "summary": "会话列表", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/conversations/{user_id}": {"get": {"tags": ["私信"], "summary": "会话消息", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/explore/messages": {"post": {"tags": ["私信"], "summary": "发送私信", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Calora Explore API",
	Description:      "Explore social feed: posts, likes, reactions, comments, follows and direct messages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
