package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

type contentType string

const (
	ContentTypeJSON contentType = "application/json"

	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"
	HeaderAnalytics   = "X-IBMCloud-SDK-Analytics"
)

// RequestBuilder assembles one HTTP request. Path parameters are escaped, absent
// query values are dropped and headers added later replace earlier ones.
type RequestBuilder struct {
	Method string
	URL    *url.URL
	Header http.Header
	Query  url.Values
	Body   []byte

	ctx context.Context
}

func NewRequestBuilder(method string) *RequestBuilder {
	return &RequestBuilder{
		Method: method,
		Header: make(http.Header),
		Query:  make(url.Values),
		ctx:    context.Background(),
	}
}

func (r *RequestBuilder) WithContext(ctx context.Context) *RequestBuilder {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

// ResolveRequestURL joins serviceURL with pathTemplate after substituting every
// {placeholder}. A placeholder without a non-empty value is a MissingParameterError.
func (r *RequestBuilder) ResolveRequestURL(serviceURL, pathTemplate string, pathParams map[string]string) (*RequestBuilder, error) {
	if serviceURL == "" {
		return r, ErrServiceURLMissing
	}

	var path strings.Builder
	rest := pathTemplate
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			path.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return r, fmt.Errorf("unterminated placeholder in path %q", pathTemplate)
		}
		end += start

		name := rest[start+1 : end]
		value, ok := pathParams[name]
		if !ok || value == "" {
			return r, &MissingParameterError{Parameter: name}
		}
		path.WriteString(rest[:start])
		path.WriteString(url.PathEscape(value))
		rest = rest[end+1:]
	}

	u, err := url.Parse(strings.TrimRight(serviceURL, "/") + path.String())
	if err != nil {
		return r, fmt.Errorf("invalid request URL: %w", err)
	}
	r.URL = u
	return r, nil
}

// AddQuery adds name=value. value may be a pointer, a nil pointer is skipped.
// Booleans are sent as true/false and integers in decimal.
func (r *RequestBuilder) AddQuery(name string, value interface{}) *RequestBuilder {
	if s, ok := queryString(value); ok {
		r.Query.Add(name, s)
	}
	return r
}

func queryString(value interface{}) (string, bool) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return "", false
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.String:
		return rv.String(), true
	}
	return fmt.Sprint(rv.Interface()), true
}

func (r *RequestBuilder) AddHeader(name, value string) *RequestBuilder {
	r.Header.Set(name, value)
	return r
}

func (r *RequestBuilder) AddHeaders(headers map[string]string) *RequestBuilder {
	for name, value := range headers {
		r.Header.Set(name, value)
	}
	return r
}

// SetBodyContentJSON encodes body with MarshalModel and marks the request as JSON.
func (r *RequestBuilder) SetBodyContentJSON(body interface{}) (*RequestBuilder, error) {
	b, err := MarshalModel(body)
	if err != nil {
		return r, fmt.Errorf("encoding request body: %w", err)
	}
	r.Body = b
	r.Header.Set(HeaderContentType, string(ContentTypeJSON))
	return r, nil
}

func (r *RequestBuilder) Build() (*http.Request, error) {
	if r.URL == nil {
		return nil, ErrServiceURLMissing
	}

	u := *r.URL
	if len(r.Query) > 0 {
		query := u.Query()
		for name, values := range r.Query {
			for _, v := range values {
				query.Add(name, v)
			}
		}
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	request, err := http.NewRequestWithContext(r.ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for name, values := range r.Header {
		request.Header[name] = append([]string(nil), values...)
	}
	return request, nil
}
