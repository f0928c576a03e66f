package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition is a business error with a stable code and default message.
type Definition struct {
	Code    string
	Message string
}

// auth errors
var (
	UserNotFound           = Definition{Code: "USER_NOT_FOUND", Message: "존재하지 않는 아이디입니다."}
	WrongPassword          = Definition{Code: "WRONG_PASSWORD", Message: "비밀번호가 틀렸습니다."}
	PhoneAlreadyRegistered = Definition{Code: "PHONE_ALREADY_REGISTERED", Message: "이미 가입된 전화번호입니다."}
	IDAlreadyRegistered    = Definition{Code: "ID_ALREADY_REGISTERED", Message: "이미 사용 중인 아이디입니다."}
	PartnerNotFound        = Definition{Code: "PARTNER_NOT_FOUND", Message: "등록된 고령자(파트너)를 찾을 수 없습니다."}
	PartnerNotLinked       = Definition{Code: "PARTNER_NOT_LINKED", Message: "연결된 파트너가 없습니다."}
	InvalidPhone           = Definition{Code: "INVALID_PHONE", Message: "올바르지 않은 전화번호 형식입니다."}
	SessionNotFound        = Definition{Code: "SESSION_NOT_FOUND", Message: "로그인 정보가 없습니다."}
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
)

// alarm errors
var (
	AlarmNotFound  = Definition{Code: "ALARM_NOT_FOUND", Message: "알림을 찾을 수 없습니다."}
	AlarmForbidden = Definition{Code: "ALARM_FORBIDDEN", Message: "해당 알림에 접근할 수 없습니다."}
)

// schedule errors
var (
	ScheduleIndexInvalid = Definition{Code: "SCHEDULE_INDEX_INVALID", Message: "일정 항목을 찾을 수 없습니다."}
	ScheduleDateInvalid  = Definition{Code: "SCHEDULE_DATE_INVALID", Message: "올바르지 않은 날짜 형식입니다."}
)

// notification dispatch errors
var (
	DispatchReasonRequired = Definition{Code: "DISPATCH_REASON_REQUIRED", Message: "미루기 사유가 필요합니다."}
)

// state check-in errors
var (
	CheckInNotFound = Definition{Code: "CHECKIN_NOT_FOUND", Message: "상태 기록을 찾을 수 없습니다."}
)

// validation
var (
	ValidationFailed = Definition{Code: "INVALID_REQUEST", Message: "필수 항목이 누락되었습니다."}
	TooManyRequests  = Definition{Code: "TOO_MANY_REQUESTS", Message: "요청이 너무 잦습니다. 잠시 후 다시 시도해 주세요."}
)

// Lookup maps codes back to definitions.
var Lookup = map[string]Definition{
	UserNotFound.Code:           UserNotFound,
	WrongPassword.Code:          WrongPassword,
	PhoneAlreadyRegistered.Code: PhoneAlreadyRegistered,
	IDAlreadyRegistered.Code:    IDAlreadyRegistered,
	PartnerNotFound.Code:        PartnerNotFound,
	PartnerNotLinked.Code:       PartnerNotLinked,
	InvalidPhone.Code:           InvalidPhone,
	SessionNotFound.Code:        SessionNotFound,
	Unauthorized.Code:           Unauthorized,
	AlarmNotFound.Code:          AlarmNotFound,
	AlarmForbidden.Code:         AlarmForbidden,
	ScheduleIndexInvalid.Code:   ScheduleIndexInvalid,
	ScheduleDateInvalid.Code:    ScheduleDateInvalid,
	DispatchReasonRequired.Code: DispatchReasonRequired,
	CheckInNotFound.Code:        CheckInNotFound,
	ValidationFailed.Code:       ValidationFailed,
	TooManyRequests.Code:        TooManyRequests,
}

// Get returns the Definition for a code, or a generic one when unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
