package core

import (
	"errors"
	"net/http"
)

const (
	AuthTypeBasic       = "basic"
	AuthTypeBearerToken = "bearertoken"
	AuthTypeNoAuth      = "noauth"

	// APIKeyUsername is the basic auth user Event Streams expects in front of an API key.
	APIKeyUsername = "token"
)

//go:generate mockgen -source=authenticator.go -destination=mock_authenticator_test.go -package=core

// Authenticator attaches credentials to an outgoing request. Implementations
// must be safe for concurrent use.
type Authenticator interface {
	AuthenticationType() string
	Authenticate(request *http.Request) error
	Validate() error
}

type BasicAuthenticator struct {
	Username string
	Password string
}

func NewBasicAuthenticator(username, password string) (*BasicAuthenticator, error) {
	a := &BasicAuthenticator{Username: username, Password: password}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewAPIKeyAuthenticator authenticates with an API key as basic auth password.
func NewAPIKeyAuthenticator(apiKey string) (*BasicAuthenticator, error) {
	return NewBasicAuthenticator(APIKeyUsername, apiKey)
}

func (a *BasicAuthenticator) AuthenticationType() string {
	return AuthTypeBasic
}

func (a *BasicAuthenticator) Authenticate(request *http.Request) error {
	request.SetBasicAuth(a.Username, a.Password)
	return nil
}

func (a *BasicAuthenticator) Validate() error {
	if a.Username == "" {
		return errors.New("basic authenticator: username is required")
	}
	if a.Password == "" {
		return errors.New("basic authenticator: password is required")
	}
	return nil
}

type BearerTokenAuthenticator struct {
	BearerToken string
}

func NewBearerTokenAuthenticator(token string) (*BearerTokenAuthenticator, error) {
	a := &BearerTokenAuthenticator{BearerToken: token}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *BearerTokenAuthenticator) AuthenticationType() string {
	return AuthTypeBearerToken
}

func (a *BearerTokenAuthenticator) Authenticate(request *http.Request) error {
	request.Header.Set("Authorization", "Bearer "+a.BearerToken)
	return nil
}

func (a *BearerTokenAuthenticator) Validate() error {
	if a.BearerToken == "" {
		return errors.New("bearer token authenticator: token is required")
	}
	return nil
}

type NoAuthAuthenticator struct{}

func (NoAuthAuthenticator) AuthenticationType() string {
	return AuthTypeNoAuth
}

func (NoAuthAuthenticator) Authenticate(*http.Request) error {
	return nil
}

func (NoAuthAuthenticator) Validate() error {
	return nil
}
