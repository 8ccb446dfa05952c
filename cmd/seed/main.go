// Seeds demo accounts and resumes from a YAML file. Maintenance tool only;
// nothing in the server depends on it.
//
// Usage: go run ./cmd/seed -file seed.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/getbelge/GB-Backend/internal/auth"
	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/documents"
	"github.com/getbelge/GB-Backend/internal/resumes"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type seedResume struct {
	Title    string   `yaml:"title"`
	FullName string   `yaml:"full_name"`
	Skills   []string `yaml:"skills"`
	Content  string   `yaml:"content"`
}

type seedAccount struct {
	Username string       `yaml:"username"`
	Email    string       `yaml:"email"`
	Password string       `yaml:"password"`
	Resumes  []seedResume `yaml:"resumes"`
}

type seedFile struct {
	Accounts []seedAccount `yaml:"accounts"`
}

func main() {
	file := flag.String("file", "seed.yaml", "path to the seed YAML file")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	resumes.Init(nil)
	documents.Init(nil)

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read seed file: ", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		log.Fatal("Failed to parse seed file: ", err)
	}

	for _, account := range seeds.Accounts {
		if account.Username == "" || account.Email == "" || account.Password == "" {
			log.Fatal("Seed accounts need username, email and password")
		}

		var existing auth.User
		if err := db.DB.First(&existing, "username = ?", account.Username).Error; err == nil {
			fmt.Printf("skipping %s (already exists)\n", account.Username)
			continue
		}

		user := auth.User{
			UserID:         uuid.NewString(),
			Username:       account.Username,
			Email:          account.Email,
			HashedPassword: auth.HashPassword(account.Password),
			IsActive:       true,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatal("Failed to create user ", account.Username, ": ", err)
		}

		for _, r := range account.Resumes {
			resume := resumes.Resume{
				ID:       uuid.NewString(),
				Title:    r.Title,
				FullName: r.FullName,
				Skills:   r.Skills,
				Content:  r.Content,
				UserID:   user.UserID,
			}
			if err := db.DB.Create(&resume).Error; err != nil {
				log.Fatal("Failed to create resume for ", account.Username, ": ", err)
			}
		}

		fmt.Printf("seeded %s with %d resumes\n", account.Username, len(account.Resumes))
	}
}
