package main

import (
	"fmt"
	"os"

	"github.com/auditoriapp/auditoria-api/internal/db/migrate"
	"github.com/auditoriapp/auditoria-api/pkg/config"
)

// Aplica las migraciones embebidas: `migrate up` o `migrate down`.
func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	if err := migrate.Run(cfg.DB.ConnectionString(), direction); err != nil {
		fmt.Fprintln(os.Stderr, "migraciones:", err)
		os.Exit(1)
	}
	fmt.Println("migraciones aplicadas:", direction)
}
