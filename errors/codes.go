package errors

// ErrorCode identifies an application error category. Codes are stable and
// returned to clients, so renumbering is a breaking change.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Interview sessions
	ErrorCode_SESSION_NOT_FOUND      ErrorCode = 3000
	ErrorCode_SESSION_ALREADY_ENDED  ErrorCode = 3001
	ErrorCode_SESSION_LIMIT_REACHED  ErrorCode = 3002
	ErrorCode_SESSION_VOICE_GATED    ErrorCode = 3003
	ErrorCode_SESSION_INVALID_STATE  ErrorCode = 3004
	ErrorCode_SESSION_ACCESS_DENIED  ErrorCode = 3005
	ErrorCode_TRANSCRIPT_SAVE_FAILED ErrorCode = 3006

	// Scoring
	ErrorCode_SCORING_FAILED     ErrorCode = 4000
	ErrorCode_SCORE_SAVE_FAILED  ErrorCode = 4001
	ErrorCode_ENRICHMENT_FAILED  ErrorCode = 4002
	ErrorCode_EVALUATION_FAILED  ErrorCode = 4003
	ErrorCode_COUNTRY_NOT_FOUND  ErrorCode = 4004
	ErrorCode_RECORDING_NOT_FOUND ErrorCode = 4005

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5002

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 6000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 6001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                       "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_SESSION_NOT_FOUND:               "SESSION_NOT_FOUND",
	ErrorCode_SESSION_ALREADY_ENDED:           "SESSION_ALREADY_ENDED",
	ErrorCode_SESSION_LIMIT_REACHED:           "SESSION_LIMIT_REACHED",
	ErrorCode_SESSION_VOICE_GATED:             "SESSION_VOICE_GATED",
	ErrorCode_SESSION_INVALID_STATE:           "SESSION_INVALID_STATE",
	ErrorCode_SESSION_ACCESS_DENIED:           "SESSION_ACCESS_DENIED",
	ErrorCode_TRANSCRIPT_SAVE_FAILED:          "TRANSCRIPT_SAVE_FAILED",
	ErrorCode_SCORING_FAILED:                  "SCORING_FAILED",
	ErrorCode_SCORE_SAVE_FAILED:               "SCORE_SAVE_FAILED",
	ErrorCode_ENRICHMENT_FAILED:               "ENRICHMENT_FAILED",
	ErrorCode_EVALUATION_FAILED:               "EVALUATION_FAILED",
	ErrorCode_COUNTRY_NOT_FOUND:               "COUNTRY_NOT_FOUND",
	ErrorCode_RECORDING_NOT_FOUND:             "RECORDING_NOT_FOUND",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
