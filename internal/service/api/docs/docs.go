// Package docs Swagger UI(/swagger/*)가 제공하는 API 문서를 등록합니다.
//
// 문서의 내용은 cmd/scriptfinder와 api 핸들러의 swag 주석과 같습니다. 주석을 바꾸면 이 문서도 함께 갱신합니다.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/imports": {
            "post": {
                "description": "검색 결과 하나를 {import.project_dir}/Assets/{import.folder} 폴더로 복사합니다.\n로컬 파일은 search.local_paths 하위, 원격 파일은 remote.sources에 설정된 호스트에 있어야 합니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Import"],
                "summary": "검색 결과 가져오기",
                "parameters": [
                    {
                        "description": "가져올 파일",
                        "name": "import",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request.ImportRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "저장된 위치", "schema": {"$ref": "#/definitions/importer.Result"}},
                    "400": {"description": "잘못된 요청 (허용되지 않은 위치, 잘못된 파일 이름 등)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "존재하지 않는 원본 파일", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "같은 이름의 파일이 이미 존재함", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "원격 저장소 응답 오류", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/searches": {
            "post": {
                "description": "파일 이름에 검색어가 포함된 스크립트를 로컬 검색 경로와 원격 저장소에서 찾는 검색 세션을 시작합니다.\n응답의 Location 헤더로 진행 상황을 조회할 수 있습니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "검색 시작",
                "parameters": [
                    {
                        "description": "검색어",
                        "name": "search",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request.SearchRequest"}
                    }
                ],
                "responses": {
                    "202": {
                        "description": "시작된 검색 세션",
                        "schema": {"$ref": "#/definitions/search.Snapshot"},
                        "headers": {"Location": {"type": "string", "description": "세션 조회 경로"}}
                    },
                    "400": {"description": "잘못된 요청 (검색어 누락, JSON 형식 오류 등)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "415": {"description": "JSON이 아닌 요청 본문", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "작업 실행기가 중지됨", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/searches/{id}": {
            "get": {
                "description": "검색 세션의 상태(running, completed, canceled)와 지금까지 찾은 결과를 반환합니다.",
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "검색 조회",
                "parameters": [
                    {"type": "string", "description": "검색 세션 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "검색 세션", "schema": {"$ref": "#/definitions/search.Snapshot"}},
                    "404": {"description": "존재하지 않는 세션", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "검색 세션이 시작한 작업들을 모두 중지합니다.",
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "검색 취소",
                "parameters": [
                    {"type": "string", "description": "검색 세션 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "성공", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "404": {"description": "존재하지 않는 세션", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "서버와 작업 실행기의 상태를 확인합니다.",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "서버 헬스체크",
                "responses": {
                    "200": {"description": "헬스체크 결과", "schema": {"$ref": "#/definitions/system.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "서버 버전 정보",
                "responses": {
                    "200": {"description": "버전 정보", "schema": {"$ref": "#/definitions/system.VersionResponse"}}
                }
            }
        }
    },
    "definitions": {
        "importer.Result": {
            "type": "object",
            "properties": {
                "source": {"type": "string"},
                "target": {"type": "string"},
                "bytes": {"type": "integer"}
            }
        },
        "request.ImportRequest": {
            "type": "object",
            "required": ["path"],
            "properties": {
                "path": {"description": "검색 결과의 경로. 로컬 파일 경로 또는 http(s) URL입니다.", "type": "string", "maxLength": 2048},
                "name": {"description": "저장할 파일 이름. 비어 있으면 Path의 파일 이름을 사용합니다.", "type": "string", "maxLength": 255}
            }
        },
        "request.SearchRequest": {
            "type": "object",
            "required": ["term"],
            "properties": {
                "term": {"description": "파일 이름에 포함되어야 하는 검색어", "type": "string", "maxLength": 100}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "result_code": {"description": "HTTP 상태 코드 (예: 400, 404, 500)", "type": "integer"},
                "message": {"description": "에러 메시지", "type": "string"}
            }
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {
                "result_code": {"description": "처리 결과 코드 (0: 성공)", "type": "integer"},
                "message": {"description": "처리 결과 메시지", "type": "string"}
            }
        },
        "search.Result": {
            "type": "object",
            "properties": {
                "name": {"description": "파일 이름 (예: PlayerController.cs)", "type": "string"},
                "path": {"description": "로컬 파일의 절대 경로 또는 원격 파일의 다운로드 URL", "type": "string"},
                "source": {"description": "결과를 찾은 검색 대상. 로컬 검색이면 local, 원격 검색이면 저장소 ID입니다.", "type": "string"}
            }
        },
        "search.Snapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "term": {"type": "string"},
                "status": {"type": "string", "enum": ["running", "completed", "canceled"]},
                "results": {"type": "array", "items": {"$ref": "#/definitions/search.Result"}},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/search.SourceError"}},
                "truncated": {"type": "boolean"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"}
            }
        },
        "search.SourceError": {
            "type": "object",
            "properties": {
                "source": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "system.DependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"description": "헬스체크 상태: healthy, unhealthy", "type": "string"},
                "message": {"description": "상태 상세 정보 또는 에러 메시지", "type": "string"}
            }
        },
        "system.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"description": "전체 헬스체크 상태: healthy, unhealthy", "type": "string"},
                "uptime": {"description": "서버 가동 시간(초)", "type": "integer"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/system.DependencyStatus"}}
            }
        },
        "system.VersionResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "commit": {"type": "string"},
                "build_date": {"type": "string"},
                "go_version": {"type": "string"},
                "platform": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo 실행 환경에 맞게 Host 등을 바꿀 수 있도록 노출합니다.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ScriptFinder API",
	Description:      "파일 이름으로 스크립트를 찾아 프로젝트로 가져오는 ScriptFinder의 REST API입니다.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
