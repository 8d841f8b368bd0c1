// Copyright 2025 Expertly Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

// Machine-readable codes of the shared error taxonomy. Authorization
// failures surface only these plus a trace id; required and actual roles
// stay in the audit trail.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeBadRequest   = "BAD_REQUEST"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

var (
	Failed                        = failed(500, CodeInternal, "Request failed")
	RequestParameterParsingFailed = failed(400, CodeBadRequest, "Request parameter parsing failed")
	InternalError                 = failed(500, CodeInternal, "Internal error, please contact the administrator")

	// Unauthenticated (401) family. All of these surface as a generic
	// unauthorized signal; the split exists for logs and metrics.
	Unauthorized         = failed(401, CodeUnauthorized, "Unauthorized")
	AuthenticationFailed = failed(401, CodeUnauthorized, "Authentication failed")
	InvalidToken         = failed(401, CodeUnauthorized, "Invalid token")
	TokenBeEmpty         = failed(401, CodeUnauthorized, "Token cannot be empty")
	TokenExpired         = failed(401, CodeUnauthorized, "Token is expired")
	TokenFormatIncorrect = failed(401, CodeUnauthorized, "Token format is incorrect")

	// Forbidden (403) family.
	Forbidden        = failed(403, CodeForbidden, "Forbidden")
	PermissionDenied = failed(403, CodeForbidden, "Permission denied")

	BadRequest       = failed(400, CodeBadRequest, "Bad request")
	NotFound         = failed(404, CodeNotFound, "Not found")
	ExpertIdIsEmpty  = failed(400, CodeBadRequest, "Expert id is empty")
	UserIdIsEmpty    = failed(400, CodeBadRequest, "User id is empty")
	UserNotExist     = failed(404, CodeNotFound, "User does not exist")
	ExpertNotExist   = failed(404, CodeNotFound, "Expert does not exist")
	UserAlreadyExist = failed(409, CodeConflict, "User already exists")
	MemberExists     = failed(409, CodeConflict, "User is already a member of this expert")

	InvalidInitData          = failed(401, CodeUnauthorized, "Telegram init data verification failed")
	InitDataExpired          = failed(401, CodeUnauthorized, "Telegram init data is stale")
	IncorrectUserOrPassword  = failed(401, CodeUnauthorized, "Incorrect username or password")
	UsernamePasswordRequired = failed(400, CodeBadRequest, "Username and password are required")
)

var Success = success(200, "OK", "Request Success")

func failed(status int, code, msg string) *Response {
	return &Response{
		Status: status,
		Code:   code,
		Msg:    msg,
	}
}

func success(status int, code, msg string) *Response {
	return &Response{
		Status: status,
		Code:   code,
		Msg:    msg,
	}
}
