package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	httpRouter "github.com/jhoicas/Inventario-snapshot/internal/interfaces/http"
	"github.com/jhoicas/Inventario-snapshot/pkg/jwt"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		userID string
		role   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un Bearer Token para la API de lectura",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch role {
			case httpRouter.RoleAdmin, httpRouter.RoleAnalista, httpRouter.RoleLector:
			default:
				return a.fail(fmt.Errorf("rol %q no soportado", role), "token")
			}
			if userID == "" {
				return a.fail(errors.New("--user requerido"), "token")
			}
			tok, err := jwt.Generate(a.cfg.JWT.Secret, userID, role, a.cfg.JWT.Issuer, a.cfg.JWT.Expiration)
			if err != nil {
				return a.fail(err, "generar token")
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "identificador del consumidor")
	cmd.Flags().StringVar(&role, "role", httpRouter.RoleLector, "admin | analista | lector")
	return cmd
}
