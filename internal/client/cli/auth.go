package cli

import (
	"context"
	"log"
)

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username")
	if err != nil {
		return err
	}
	password, err := GetSimpleText(a.reader, "Password")
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, username, password); err != nil {
		log.Printf("Registration failed: %v", err)
		return err
	}
	printlnFn("Registered. You can login now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username")
	if err != nil {
		return err
	}
	password, err := GetSimpleText(a.reader, "Password")
	if err != nil {
		return err
	}

	if err := a.client.Login(ctx, username, password); err != nil {
		log.Printf("Login failed: %v", err)
		return err
	}
	a.loggedIn = true
	printlnFn("Logged in.")

	// Pull the remote collection right away; a failure here just leaves
	// the mirror data on screen.
	return a.Refresh(ctx, false)
}
