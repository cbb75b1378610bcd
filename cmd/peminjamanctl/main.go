// peminjamanctl tareas de administración: migraciones, datos iniciales y alta de usuarios.
//
// Uso:
//
//	peminjamanctl migrate
//	peminjamanctl seed
//	peminjamanctl user create --username rina
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "peminjamanctl",
		Short:         "Administración de Peminjaman API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newUserCmd())
	return root
}
