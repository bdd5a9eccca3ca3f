package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleVerifier exchanges an authorization code server-side and validates
// the returned ID token against our client id.
type GoogleVerifier struct {
	oauth    *oauth2.Config
	clientID string
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID, clientSecret, redirectURL string) *GoogleVerifier {
	return &GoogleVerifier{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// VerifiedEmail returns the email claim once Google has verified it.
func (g *GoogleVerifier) VerifiedEmail(ctx context.Context, code string) (string, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("id_token not present in token response")
	}
	return g.emailFromIDToken(ctx, rawIDToken)
}

func (g *GoogleVerifier) emailFromIDToken(ctx context.Context, rawIDToken string) (string, error) {
	payload, err := g.validate(ctx, rawIDToken, g.clientID)
	if err != nil {
		return "", err
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", errors.New("email not present in token")
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return "", errors.New("google email not verified")
	}
	return email, nil
}
