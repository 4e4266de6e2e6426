// Aplica los archivos de migración de migrations/ en orden lexicográfico.
// Uso: go run ./cmd/migrate [dir]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sicoil/backoffice/internal/infrastructure/postgres"
	"github.com/sicoil/backoffice/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("cargar configuración: %v\n", err)
		os.Exit(1)
	}

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Printf("conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("leer directorio de migraciones: %v\n", err)
		os.Exit(1)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		sqlBytes, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Printf("leer %s: %v\n", name, err)
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			fmt.Printf("aplicar %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("aplicada %s\n", name)
	}
	fmt.Println("migraciones completas")
}
