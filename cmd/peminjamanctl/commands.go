package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	domaininv "github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/store"
	"github.com/jhoicas/Peminjaman-api/pkg/config"
)

// seedItem komoditas inicial: categoría, nombre y cantidad total.
type seedItem struct {
	Category string
	Name     string
	Quantity int
}

var seedCatalog = []seedItem{
	{"Laptop", "Dell Latitude 5420", 10},
	{"Laptop", "HP EliteBook 840", 8},
	{"Projector", "Epson EB-X41", 4},
	{"Projector", "BenQ MX535", 4},
	{"Camera", "Canon EOS 750D", 5},
	{"Camera", "Sony Alpha 7 III", 3},
	{"Audio Equipment", "Shure SM58 Microphone", 12},
	{"Audio Equipment", "JBL EON615 Speaker", 8},
	{"Network Equipment", "Cisco Catalyst 2960", 3},
	{"Network Equipment", "TP-Link Archer C7", 8},
}

const (
	seedAdminUser     = "admin"
	seedAdminPassword = "admin123"
)

// openStore carga la configuración del entorno y abre (y migra) el almacenamiento.
func openStore(ctx context.Context) (*config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o actualiza el esquema de la base",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "esquema al día (%s)\n", st.Driver)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea el usuario admin y el catálogo inicial si no existen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			return seed(cmd.Context(), cmd.OutOrStdout(), cfg, st)
		},
	}
}

// seed es idempotente: no repone ítems ya existentes ni duplica el admin.
func seed(ctx context.Context, out io.Writer, cfg *config.Config, st *store.Store) error {
	authUC := auth.NewAuthUseCase(st.Users, nil, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration})
	if _, err := authUC.CreateUser(ctx, seedAdminUser, seedAdminPassword); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("crear admin: %w", err)
		}
		fmt.Fprintln(out, "usuario admin ya existe")
	} else {
		fmt.Fprintln(out, "usuario admin creado")
	}

	catalog := inventory.NewKomoditasUseCase(st.TxRunner, st.Komoditas)
	created := 0
	for _, it := range seedCatalog {
		existing, err := st.Komoditas.FindByKey(ctx, domaininv.NormalizeKey(it.Category), domaininv.NormalizeKey(it.Name))
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := catalog.CreateOrRestock(ctx, dto.CreateKomoditasRequest{
			DeviceCategory: it.Category, DeviceName: it.Name, Quantity: it.Quantity,
		}); err != nil {
			return fmt.Errorf("crear %s (%s): %w", it.Name, it.Category, err)
		}
		created++
	}
	fmt.Fprintf(out, "komoditas creadas: %d de %d\n", created, len(seedCatalog))
	return nil
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{Use: "user", Short: "Gestión de usuarios"}

	var username, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario del personal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readPassword(cmd.OutOrStdout(), "Contraseña: ")
				if err != nil {
					return fmt.Errorf("leer contraseña: %w", err)
				}
				password = p
			}
			cfg, st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			authUC := auth.NewAuthUseCase(st.Users, nil, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration})
			user, err := authUC.CreateUser(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&username, "username", "u", "", "nombre de usuario")
	create.Flags().StringVar(&password, "password", "", "contraseña (si se omite se pide sin eco)")
	_ = create.MarkFlagRequired("username")

	userCmd.AddCommand(create)
	return userCmd
}

// readPassword lee la contraseña sin eco cuando stdin es una terminal.
func readPassword(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
