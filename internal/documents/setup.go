package documents

import (
	"log"

	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/textgen"
)

// Generator is the active text-generation client, set in Init.
var Generator *textgen.Client

func Init(client *textgen.Client) {
	if err := db.EnsureSchema(db.DB, "app_docs"); err != nil {
		log.Fatal("Failed to ensure schema app_docs: ", err)
	}

	if err := db.DB.AutoMigrate(&Document{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	// Referential integrity to the owning account. AutoMigrate can't express
	// a cross-schema foreign key, so it's declared here.
	if err := db.DB.Exec(`
        DO $$ BEGIN
            IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'documents_user_fk') THEN
                ALTER TABLE app_docs.documents
                    ADD CONSTRAINT documents_user_fk FOREIGN KEY (user_id)
                    REFERENCES app_auth.users (user_id) ON DELETE CASCADE;
            END IF;
        END $$;
    `).Error; err != nil {
		log.Fatal("Failed to create documents_user_fk: ", err)
	}

	Generator = client
}
