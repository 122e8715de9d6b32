// Auth command definitions: login, register and password recovery
// against the remote Habit Forge API.
package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/habitforge/habitd/internal/auth"
)

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and save the session locally",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
		},
		Action: r.Login,
	}
}

func registerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account and save the session locally",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name", Required: true},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
		},
		Action: r.Register,
	}
}

func forgotPasswordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "forgot-password",
		Usage: "Request a password reset email",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
		},
		Action: r.ForgotPassword,
	}
}

func resetPasswordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset-password",
		Usage: "Set a new password using the emailed reset token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "Reset token from the email", Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password", Required: true},
		},
		Action: r.ResetPassword,
	}
}

func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	client := r.authClient()
	user, err := client.Login(ctx, cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := auth.SaveSession(ctx, store, auth.Session{User: user}); err != nil {
		return err
	}
	r.logger.Info("logged in", "name", user.Name, "email", user.Email)
	return nil
}

func (r *Runner) Register(ctx context.Context, cmd *cli.Command) error {
	client := r.authClient()
	name := cmd.String("name")
	email := cmd.String("email")

	token, err := client.Register(ctx, name, email, cmd.String("password"))
	if err != nil {
		return err
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	session := auth.Session{
		User:  auth.User{Name: name, Email: email},
		Token: token,
	}
	if err := auth.SaveSession(ctx, store, session); err != nil {
		return err
	}
	if claims, err := auth.ParseToken(token); err == nil && !claims.ExpiresAt.IsZero() {
		r.logger.Info("registered", "email", email, "session expires", claims.ExpiresAt)
	} else {
		r.logger.Info("registered", "email", email)
	}
	return nil
}

func (r *Runner) ForgotPassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.authClient().RequestPasswordReset(ctx, cmd.String("email")); err != nil {
		return err
	}
	r.logger.Info("reset email requested", "email", cmd.String("email"))
	return nil
}

func (r *Runner) ResetPassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.authClient().ResetPassword(ctx, cmd.String("token"), cmd.String("password")); err != nil {
		return err
	}
	r.logger.Info("password updated, sign in with the new password")
	return nil
}
