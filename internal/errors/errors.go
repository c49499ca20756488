package errors

import "net/http"

type HTTPError interface {
    error
    StatusCode() int
}

type apiError struct {
    msg  string
    code int
}

func (e *apiError) Error() string     { return e.msg }
func (e *apiError) StatusCode() int   { return e.code }

var (
    ErrInvalidEvent       = &apiError{msg: "invalid event handle", code: http.StatusBadRequest}
    ErrInvalidAccount     = &apiError{msg: "invalid account address", code: http.StatusBadRequest}
    ErrDataShapeMismatch  = &apiError{msg: "event data is not an account", code: http.StatusUnprocessableEntity}

    ErrRemoteQuery        = &apiError{msg: "remote state query failed", code: http.StatusBadGateway}
    ErrRequestTimeout     = &apiError{"request timed out", http.StatusGatewayTimeout}
    ErrInternal           = &apiError{msg: "internal server error", code: http.StatusInternalServerError}
)
