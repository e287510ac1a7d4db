package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"signup_portal/internal/app/service"
	"signup_portal/internal/common/security"
	"signup_portal/internal/domain/model"
)

func newCreateUserCmd(rt *rootState) *cobra.Command {
	var (
		req        service.RegistrationRequest
		issueToken bool
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register an account directly, bypassing the web role policy",
		Long: `create-user registers an account through the same validation and
duplicate checks as the web form. Operators may grant any known role.

With --issue-token an admin account also gets a bearer token, which lets
the holder create further admin accounts through the web endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if issueToken && req.Role != model.RoleAdmin {
				return fmt.Errorf("--issue-token requires --role=%s", model.RoleAdmin)
			}

			ctx := cmd.Context()
			cfg, logger := rt.cfg, rt.logger

			userRepo, closeRepo, err := openUserRepository(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			registrationService := service.NewRegistrationService(
				userRepo,
				security.NewPasswordHasher(cfg.BcryptCost),
				service.AllowedRolePolicy{},
				cfg.StoreTimeout,
				logger,
			)

			user, err := registrationService.Register(ctx, req)
			if err != nil {
				return fmt.Errorf("%s: %s", service.OutcomeOf(err), service.OutcomeOf(err).Message())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created user %s (%s) role=%s handle=%s\n", user.ID, user.Email, user.Role, user.Handle)

			if issueToken {
				token, err := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp).GenerateToken(user.ID, user.Role)
				if err != nil {
					return fmt.Errorf("generate token: %w", err)
				}
				fmt.Fprintf(out, "token: %s\n", token)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.FirstName, "first-name", "", "First name")
	flags.StringVar(&req.LastName, "last-name", "", "Last name")
	flags.StringVar(&req.Email, "email", "", "Email address")
	flags.StringVar(&req.Phone, "phone", "", "Phone number, 10 digits")
	flags.StringVar(&req.Password, "password", "", "Password")
	flags.StringVar(&req.Role, "role", model.RoleUser, "Role: user or admin")
	flags.BoolVar(&issueToken, "issue-token", false, "Print a bearer token for the new admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
