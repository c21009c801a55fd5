package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
)

func main() {
	firstName := flag.String("first-name", "", "Staff first name")
	lastName := flag.String("last-name", "", "Staff last name")
	email := flag.String("email", "", "Login email")
	password := flag.String("password", "", "Initial password")
	roles := flag.String("roles", "teacher", "Comma-separated roles: admin,dean,teacher,viewer")
	flag.Parse()

	if *firstName == "" || *email == "" || *password == "" {
		log.Fatal("first-name, email and password are required")
	}

	var roleNames []models.RoleName
	for _, r := range strings.Split(*roles, ",") {
		role := models.RoleName(strings.TrimSpace(r))
		valid := false
		for _, known := range models.AllRoles() {
			if role == known {
				valid = true
				break
			}
		}
		if !valid {
			log.Fatalf("Unknown role %q", role)
		}
		roleNames = append(roleNames, role)
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}

	if err := database.CreateStaff(db, user, roleNames...); err != nil {
		log.Fatalf("Error creating staff: %v", err)
	}

	fmt.Printf("Staff created successfully: %s %s (%s) with roles %s\n",
		user.FirstName, user.LastName, user.Email, *roles)
}
