// Package noop provides a SessionProvider that accepts all requests
// with a fixed development identity. Used when auth.type is "none".
package noop

import (
	"context"
	"net/http"

	"github.com/pathlight-ai/pathlight/pkg/auth"
)

// Provider always returns Yes with a development identity. The
// credential is forwarded upstream as-is.
type Provider struct {
	Subject    string
	Credential string
}

func (p *Provider) Resolve(_ context.Context, _ *http.Request) auth.Result {
	subject := p.Subject
	if subject == "" {
		subject = "dev"
	}
	return auth.Result{
		Decision: auth.Yes,
		Identity: &auth.Identity{Subject: subject, Credential: p.Credential},
	}
}
