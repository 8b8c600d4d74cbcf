package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/borderpass/borderpass-backend/internal/adapter/repository"
	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	"github.com/borderpass/borderpass-backend/internal/domain/repositories"
	"github.com/borderpass/borderpass-backend/internal/infrastructure/database"
	"github.com/borderpass/borderpass-backend/pkg/config"
	pkgjwt "github.com/borderpass/borderpass-backend/pkg/jwt"
)

type seedQuestion struct {
	text       string
	category   string
	difficulty int
	tags       []string
}

var seedCountries = []entities.Country{
	{Code: "USA", Name: "United States", Flag: "🇺🇸", Description: "F1, B1/B2, and J1 visa interview preparation", IsActive: true},
	{Code: "CANADA", Name: "Canada", Flag: "🇨🇦", Description: "Study permit and visitor visa interview preparation", IsActive: true},
	{Code: "UK", Name: "United Kingdom", Flag: "🇬🇧", Description: "Standard Visitor and Student visa preparation", IsActive: true},
}

var seedQuestions = map[string][]seedQuestion{
	"USA": {
		{"Why did you choose the United States for your studies?", "study_intent", 2, []string{"study_intent", "motivation"}},
		{"How will you finance your education and living expenses in the US?", "financial", 3, []string{"financial", "bank_balance", "sponsor"}},
		{"What are your plans after completing your degree?", "return_intent", 2, []string{"return_intent", "career"}},
		{"Do you have any relatives currently in the United States?", "ties", 1, []string{"ties", "family"}},
		{"Can you tell me about your university and the program you will study?", "study_intent", 2, []string{"study_intent", "university"}},
		{"What is your current academic background?", "study_intent", 1, []string{"study_intent", "academic"}},
		{"Who is your financial sponsor and what do they do for work?", "financial", 3, []string{"financial", "sponsor"}},
		{"Why can you not pursue this degree in your home country?", "study_intent", 3, []string{"study_intent", "motivation"}},
	},
	"CANADA": {
		{"What is the name of your institution and the program you applied to?", "study_intent", 1, []string{"study_intent", "institution"}},
		{"How did you receive acceptance from this Canadian institution?", "study_intent", 2, []string{"study_intent", "admissions"}},
		{"What are your financial resources to support your stay in Canada?", "financial", 3, []string{"financial"}},
		{"Do you have strong ties to your home country that will ensure your return?", "return_intent", 3, []string{"return_intent", "ties"}},
	},
	"UK": {
		{"What is the purpose of your visit to the United Kingdom?", "study_intent", 1, []string{"study_intent"}},
		{"How are you funding your studies and accommodation in the UK?", "financial", 3, []string{"financial"}},
		{"What do you plan to do after finishing your studies in the UK?", "return_intent", 2, []string{"return_intent"}},
	},
}

func main() {
	log.Println("🌱 Seeding database...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	ctx := context.Background()
	countryRepo := repository.NewCountryRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	userRepo := repository.NewUserRepository(db)

	for i := range seedCountries {
		country := seedCountries[i]
		if err := countryRepo.Upsert(ctx, &country); err != nil {
			log.Fatalf("Failed to seed country %s: %v", country.Code, err)
		}

		stored, err := countryRepo.FindByCode(ctx, country.Code)
		if err != nil || stored == nil {
			log.Fatalf("Failed to reload country %s: %v", country.Code, err)
		}

		existing, err := questionRepo.ListByCountryID(ctx, stored.ID, repositories.QuestionFilters{})
		if err != nil {
			log.Fatalf("Failed to list questions for %s: %v", country.Code, err)
		}
		if len(existing) > 0 {
			log.Printf("⏭️  Questions for %s already seeded, skipping", country.Code)
			continue
		}

		for _, q := range seedQuestions[country.Code] {
			tags, err := json.Marshal(q.tags)
			if err != nil {
				log.Fatalf("Failed to encode tags: %v", err)
			}
			question := &entities.Question{
				CountryID:  stored.ID,
				Text:       q.text,
				Category:   q.category,
				Difficulty: q.difficulty,
				Tags:       datatypes.JSON(tags),
				IsActive:   true,
			}
			if err := questionRepo.Create(ctx, question); err != nil {
				log.Fatalf("Failed to seed question: %v", err)
			}
		}
		log.Printf("✅ Seeded %s with %d questions", country.Code, len(seedQuestions[country.Code]))
	}

	// Dev convenience: a test student plus a ready-to-use access token.
	if cfg.Server.Environment != "production" {
		testUser := &entities.User{
			ID:       uuid.New(),
			Email:    "student@example.com",
			Name:     "Test Student",
			Role:     entities.UserRoleStudent,
			IsActive: true,
		}
		if err := userRepo.Upsert(ctx, testUser); err != nil {
			log.Fatalf("Failed to seed test user: %v", err)
		}

		stored, err := userRepo.FindByEmail(ctx, testUser.Email)
		if err != nil || stored == nil {
			log.Fatalf("Failed to reload test user: %v", err)
		}

		jwtManager := pkgjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)
		token, err := jwtManager.GenerateAccessToken(stored.ID, stored.Email, string(stored.Role))
		if err != nil {
			log.Fatalf("Failed to generate test token: %v", err)
		}
		log.Printf("👤 Test user: %s", stored.Email)
		log.Printf("🔑 Access token: %s", token)
	}

	log.Println("✨ Seeding complete!")
}
