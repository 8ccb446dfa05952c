package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/getbelge/GB-Backend/internal/auth"
	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/documents"
	"github.com/getbelge/GB-Backend/internal/middleware"
	"github.com/getbelge/GB-Backend/internal/resumes"
	"github.com/getbelge/GB-Backend/internal/textgen"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	textgenCfg := textgen.LoadFromEnv()
	if err := textgenCfg.Validate(); err != nil {
		log.Fatal("Invalid textgen config: ", err)
	}
	generator := textgen.NewClient(textgenCfg)

	auth.Init()
	resumes.Init(generator)
	documents.Init(generator)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/resumes", resumes.SetupRoutes())
	r.Mount("/documents", documents.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
