package auth

import (
	"golang.org/x/oauth2"
)

const (
	// Strava OAuth endpoints
	authURL  = "https://www.strava.com/oauth/authorize"
	tokenURL = "https://www.strava.com/oauth/token"
)

// scopes needed to read the athlete's full activity history.
// Strava wants them comma-separated inside a single scope value.
var scopes = []string{
	"read,activity:read_all",
}

// Credentials holds the OAuth application credentials
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8723/callback"
}

// NewConfig builds an oauth2.Config from application credentials
func NewConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
		RedirectURL: creds.RedirectURL,
		Scopes:      scopes,
	}
}

// Result contains the token and athlete identity from a completed flow
type Result struct {
	Token     *oauth2.Token
	AthleteID int64
}

// ExtractAthleteID pulls the athlete ID out of the token response.
// Strava embeds a summary athlete object alongside the tokens.
func ExtractAthleteID(token *oauth2.Token) int64 {
	athlete, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return 0
	}
	id, ok := athlete["id"].(float64)
	if !ok {
		return 0
	}
	return int64(id)
}
