package errors

import (
	"encoding/json"
	"net/http"
)

//ProblemDetails stores details about a certain problem according to RFC7807
//See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

//ProblemDetailsImpl is an implementation of the ProblemDetails interface
type ProblemDetailsImpl struct {
	typ     string
	title   string
	detail  string
	code    int
	traceID string
}

const (
	//ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"

	problemTypeBase string = "https://diwise.io/attribute-table/errors/"
)

func newProblem(typ, title, detail string, code int, traceID string) ProblemDetailsImpl {
	return ProblemDetailsImpl{
		typ:     problemTypeBase + typ,
		title:   title,
		detail:  detail,
		code:    code,
		traceID: traceID,
	}
}

//BadRequestData reports that the request includes input data which does not meet the requirements of the operation
type BadRequestData struct {
	ProblemDetailsImpl
}

func NewBadRequestData(detail, traceID string) *BadRequestData {
	return &BadRequestData{newProblem("BadRequestData", "Bad Request Data", detail, http.StatusBadRequest, traceID)}
}

func ReportNewBadRequestData(w http.ResponseWriter, detail, traceID string) {
	NewBadRequestData(detail, traceID).WriteResponse(w)
}

//AmbiguousAttribute reports that an object carries more than one value for the same attribute
type AmbiguousAttribute struct {
	ProblemDetailsImpl
}

func NewAmbiguousAttribute(detail, traceID string) *AmbiguousAttribute {
	return &AmbiguousAttribute{newProblem("AmbiguousAttribute", "Ambiguous Attribute", detail, http.StatusUnprocessableEntity, traceID)}
}

func ReportNewAmbiguousAttribute(w http.ResponseWriter, detail, traceID string) {
	NewAmbiguousAttribute(detail, traceID).WriteResponse(w)
}

//RequestTooLarge reports that the request body exceeds the configured limit
type RequestTooLarge struct {
	ProblemDetailsImpl
}

func NewRequestTooLarge(detail, traceID string) *RequestTooLarge {
	return &RequestTooLarge{newProblem("RequestTooLarge", "Request Too Large", detail, http.StatusRequestEntityTooLarge, traceID)}
}

func ReportNewRequestTooLarge(w http.ResponseWriter, detail, traceID string) {
	NewRequestTooLarge(detail, traceID).WriteResponse(w)
}

//InternalError reports that there has been an error during the operation execution
type InternalError struct {
	ProblemDetailsImpl
}

func NewInternalError(detail, traceID string) *InternalError {
	return &InternalError{newProblem("InternalError", "Internal Error", detail, http.StatusInternalServerError, traceID)}
}

func ReportNewInternalError(w http.ResponseWriter, detail, traceID string) {
	NewInternalError(detail, traceID).WriteResponse(w)
}

type UnauthorizedRequest struct {
	ProblemDetailsImpl
}

func NewUnauthorizedRequest(detail, traceID string) *UnauthorizedRequest {
	return &UnauthorizedRequest{newProblem("UnauthorizedRequest", "Unauthorized Request", detail, http.StatusUnauthorized, traceID)}
}

func ReportUnauthorizedRequest(w http.ResponseWriter, detail, traceID string) {
	NewUnauthorizedRequest(detail, traceID).WriteResponse(w)
}

//ContentType returns the ContentType to be used when returning this problem
func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetailsImpl) Type() string   { return p.typ }
func (p *ProblemDetailsImpl) Title() string  { return p.title }
func (p *ProblemDetailsImpl) Detail() string { return p.detail }

//MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Detail  string `json:"detail"`
		TraceID string `json:"traceId,omitempty"`
	}{
		Type:    p.typ,
		Title:   p.title,
		Detail:  p.detail,
		TraceID: p.traceID,
	})
}

//ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {

	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

//WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
