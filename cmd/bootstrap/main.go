// Command bootstrap creates the initial admin account after migrations and
// seeds have run. The password is hashed with the same cost the API uses.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"accessgate.dev/internal/rbac"
	"accessgate.dev/internal/store/pg"
)

func main() {
	log.SetFlags(0)
	var (
		dsn      = flag.String("dsn", os.Getenv("ACCESSGATE_PG_DSN"), "PostgreSQL DSN")
		email    = flag.String("email", "", "Admin email")
		password = flag.String("password", "", "Admin password")
		fullName = flag.String("full-name", "Administrator", "Admin full name")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or ACCESSGATE_PG_DSN")
	}
	if *email == "" || *password == "" {
		log.Fatal("usage: bootstrap -email <email> -password <password>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := pg.Open(*dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	var roleID string
	err = store.DB().QueryRowContext(ctx,
		`select id from roles where name = $1`, string(rbac.RoleAdmin)).Scan(&roleID)
	if err != nil {
		log.Fatalf("lookup admin role (did you run migrate up + seed?): %v", err)
	}

	svc, err := rbac.NewService(store)
	if err != nil {
		log.Fatalf("rbac service: %v", err)
	}
	user, err := svc.CreateUser(ctx, rbac.NewUser{
		FullName: *fullName,
		Email:    *email,
		Password: *password,
		RoleID:   roleID,
	})
	if err != nil {
		log.Fatalf("create admin user: %v", err)
	}
	log.Printf("created admin user %s (%s)", user.Email, user.ID)
}
