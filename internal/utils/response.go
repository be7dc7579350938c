package utils

import "cre-commission-api/internal/constant"

// Response is the unified API envelope.
type Response struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func Success(data interface{}) Response {
	return Response{
		Code: constant.CodeSuccess,
		Msg:  "success",
		Data: data,
	}
}

func Error(code int) Response {
	if msg, exists := constant.GetErrorInfo(code); exists {
		return Response{Code: code, Msg: msg}
	}
	return Response{Code: code, Msg: "unknown error"}
}

func ErrorWithData(code int, data interface{}) Response {
	r := Error(code)
	r.Data = data
	return r
}

// FromError maps a service error to the envelope, preserving the coded message
// where one exists.
func FromError(err error) Response {
	if ce, ok := err.(constant.Error); ok {
		return Response{Code: ce.Code(), Msg: ce.Message()}
	}
	return Response{Code: constant.CodeSystemError, Msg: err.Error()}
}
