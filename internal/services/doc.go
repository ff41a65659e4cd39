// Package services defines the error taxonomy shared by the CLI and the web
// front end. Every failure class is terminal for the current request.
package services
