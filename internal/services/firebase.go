package services

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// InitFirebase initializes the Firebase Admin SDK from a service account file
// and returns its auth client.
func InitFirebase(ctx context.Context, credPath string) (*auth.Client, error) {
	if _, err := os.Stat(credPath); err != nil {
		return nil, fmt.Errorf("firebase credentials %s: %w", credPath, err)
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}
	return app.Auth(ctx)
}
