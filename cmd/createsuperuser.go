package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"recipeapp.com/internal/event"
	"recipeapp.com/internal/service"
)

func newCreateSuperuserCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an account with staff and superuser rights",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			bus := event.NewBus(1)
			defer bus.Shutdown()

			user, err := service.NewUserService(db.DB, bus).CreateSuperuser(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address of the superuser")
	cmd.Flags().StringVar(&password, "password", "", "password of the superuser")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
