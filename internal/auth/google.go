// Package auth resolves Google Cloud credentials for Vertex AI calls.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CloudPlatformScope is the OAuth2 scope Vertex AI generateContent requires.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenSource returns an auto-refreshing token source backed by Application
// Default Credentials: GOOGLE_APPLICATION_CREDENTIALS, the gcloud user
// credentials file, or the metadata server when running on Google Cloud.
func TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	creds, err := google.FindDefaultCredentials(ctx, CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("finding application default credentials: %w", err)
	}
	return creds.TokenSource, nil
}

// HTTPClient returns an HTTP client that authorizes every request with a
// token from TokenSource. ctx governs token refreshes, so it should outlive
// individual requests.
func HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}
