package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/logger"
	"github.com/vinzencor/student-management/app/models"
	"github.com/vinzencor/student-management/app/routes/auth"
)

// Creates a login account from the command line, for bootstrapping the first
// admin before any user exists to call the API with.
func main() {
	firstName := flag.String("first-name", "", "user first name")
	lastName := flag.String("last-name", "", "user last name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	role := flag.String("role", models.RoleAdmin, "role: admin, accounts, front_desk or tutor")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *email == "" || *password == "" || *firstName == "" {
		log.Fatal("first-name, email and password are required")
	}

	if err := config.InitDB(log); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB(), log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("hash password", zap.Error(err))
	}

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  hashed,
		IsActive:  true,
	}

	if err := database.CreateUser(config.GetDB(), user, *role); err != nil {
		log.Fatal("create user", zap.Error(err))
	}

	log.Info("user created",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", *role))
}
