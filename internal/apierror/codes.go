package apierror

// Error type URIs following the urn:craveless:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:craveless:error:validation"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:craveless:error:bad_request"

	// TypeInvalidUUID indicates an invalid UUID format in request (400)
	TypeInvalidUUID = "urn:craveless:error:invalid_uuid"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:craveless:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:craveless:error:forbidden"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:craveless:error:not_found"

	// TypeConflict indicates a resource conflict, such as recording a
	// second outcome for a craving or driving a completed session (409)
	TypeConflict = "urn:craveless:error:conflict"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:craveless:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleInvalidUUID  = "Invalid UUID Format"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleInternal     = "Internal Server Error"
)
