// Command bootstrap interactively seeds the first admin user. It is a
// one-shot operator tool: any invalid input aborts the whole run.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/mgiannak/office-tasks/internal/config"
	"github.com/mgiannak/office-tasks/internal/database"
	"github.com/mgiannak/office-tasks/internal/models"
	"github.com/mgiannak/office-tasks/internal/repository"
	"github.com/mgiannak/office-tasks/internal/services"
	"github.com/mgiannak/office-tasks/internal/utils"
	"golang.org/x/term"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	lastName := prompt(reader, "Admin last name (used as username): ")
	firstName := prompt(reader, "Admin first name: ")

	rank, err := models.ParseRank(prompt(reader, "Rank: "))
	if err != nil {
		log.Fatalf("%v", err)
	}

	internalPhone := utils.NormalizeOptional(prompt(reader, "Internal phone (optional): "))
	mobilePhone := utils.NormalizeOptional(prompt(reader, "Mobile phone (optional): "))

	password := promptPassword("Admin password: ")
	confirm := promptPassword("Confirm password: ")
	if password != confirm {
		log.Fatal("Passwords do not match.")
	}

	userRepo := repository.NewUserRepository(database.GetDB())

	if _, err := userRepo.FindByLastName(lastName); err == nil {
		log.Fatal("A user with that last name already exists (login uses last name).")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check existing users: %v", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("%v", err)
	}

	user := &models.User{
		Rank:          rank,
		FirstName:     firstName,
		LastName:      lastName,
		InternalPhone: internalPhone,
		MobilePhone:   mobilePhone,
		Active:        true,
		IsAdmin:       true,
		PasswordHash:  &hash,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Created admin user id=%d\n", user.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	return string(raw)
}
