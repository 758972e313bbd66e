package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/internal/domain"
	"github.com/jhoicas/gestao-profissionais/internal/infrastructure/postgres"
	"github.com/jhoicas/gestao-profissionais/pkg/form"
)

var adminInput form.Registration

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Cadastra um Administrador (troca de senha obrigatória no primeiro acesso)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		adminInput.PasswordConfirm = adminInput.Password
		return withPool(ctx, func(pool *pgxpool.Pool) error {
			uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool), log.Component("admin")).
				WithTxRunner(postgres.NewTxRunner(pool))
			user, err := uc.CreateAdmin(ctx, adminInput)
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return fmt.Errorf("dados inválidos: %s", formatFields(ve.Fields))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrador %d criado (%s)\n", user.ID, user.Email)
			return nil
		})
	},
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += "; "
		}
		out += k + ": " + fields[k]
	}
	return out
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminInput.Name, "nome", "", "nome completo")
	f.StringVar(&adminInput.Email, "email", "", "e-mail de login")
	f.StringVar(&adminInput.CPF, "cpf", "", "CPF (com ou sem máscara)")
	f.StringVar(&adminInput.Phone, "telefone", "", "telefone com DDD")
	f.StringVar(&adminInput.Password, "senha", "", "senha inicial")
	for _, name := range []string{"nome", "email", "cpf", "telefone", "senha"} {
		_ = createAdminCmd.MarkFlagRequired(name)
	}
}
