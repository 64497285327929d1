// Copyright 2026 Earth Care Network Team
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

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	EnterpriseIdIsEmpty           = failed(5002, "Enterprise id is empty")
	MemberIdIsEmpty               = failed(5003, "Member id is empty")
	PersonIdIsEmpty               = failed(5004, "Person id is empty")
	ClaimTokenIsEmpty             = failed(5005, "Claim token is empty")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	AuthorizationEmpty   = failed(4404, "Authorization is empty")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	UserNotExist                  = failed(4041, "User does not exist")
	UserAlreadyExist              = failed(4042, "User already exists")
	UserIncorrectPassword         = failed(4043, "User incorrect password")
	UsernameAndPasswordIsRequired = failed(4045, "Username and password are required")

	// claim & invitation lifecycle
	ClaimTokenNotFound        = failed(6001, "Claim token not found")
	ClaimInvitationExpired    = failed(6002, "Claim invitation has expired")
	EnterpriseAlreadyClaimed  = failed(6003, "Enterprise has already been claimed")
	InvalidStatusTransition   = failed(6004, "Invalid status transition")
	LastOwnerViolation        = failed(6005, "Enterprise must retain at least one owner")
	EnterpriseNotFound        = failed(6006, "Enterprise does not exist")
	ContactNotFound           = failed(6007, "Contact does not exist")
	MemberNotFound            = failed(6008, "Team member does not exist")
	InvitationAlreadyExists   = failed(6009, "Contact already has an active invitation")
	FeatureNotInPlan          = failed(6010, "Feature not available on the current plan")
	OpportunityNotFound       = failed(6011, "Opportunity does not exist")
	TaskNotFound              = failed(6012, "Task does not exist")
	EnterpriseNameAlreadyUsed = failed(6013, "Enterprise name already exists")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
