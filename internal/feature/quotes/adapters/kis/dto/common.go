// Package dto defines data transfer objects for the KIS quotation API responses.
package dto

// Header is the envelope every KIS quotation response carries.
type Header struct {
	RtCd  string `json:"rt_cd"`  // "0" = success
	MsgCd string `json:"msg_cd"` // message code
	Msg1  string `json:"msg1"`   // message text
}

// OK reports whether the API-level return code signals success.
func (h Header) OK() bool { return h.RtCd == "0" }

// Message returns the upstream code and text for error reporting.
func (h Header) Message() (code, msg string) { return h.MsgCd, h.Msg1 }
