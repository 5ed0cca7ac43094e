// createsuperadmin crea (o promueve) un superadmin directamente en la base.
// Es el bootstrap del sistema: el primer superadmin no puede crearse por la
// API porque toda la administración exige uno.
//
// Uso: go run ./cmd/createsuperadmin -username admin -password secreto
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/infrastructure/postgres"
	"github.com/jcastano/control-inventario/pkg/config"
)

func main() {
	username := flag.String("username", "", "username del superadmin")
	password := flag.String("password", "", "contraseña del superadmin")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Uso: createsuperadmin -username <u> -password <p>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear contraseña: %v\n", err)
		os.Exit(1)
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByUsername(*username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar usuario: %v\n", err)
		os.Exit(1)
	}

	if existing != nil {
		// Promover y resetear contraseña del usuario existente.
		query := `UPDATE usuario SET password = $2, es_superusuario = true, token = NULL WHERE id = $1`
		if _, err := pool.Exec(ctx, query, existing.ID, string(hash)); err != nil {
			fmt.Fprintf(os.Stderr, "Promover usuario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Usuario %q promovido a superadmin (id=%d)\n", *username, existing.ID)
		return
	}

	user := &entity.User{
		Username:     *username,
		PasswordHash: string(hash),
		IsSuperadmin: true,
	}
	if err := users.Create(user); err != nil {
		fmt.Fprintf(os.Stderr, "Crear superadmin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Superadmin %q creado (id=%d)\n", *username, user.ID)
}
