// Package seed provisions demo data for development environments.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/skillbridge/skillbridge/internal/app/models"
	appRepos "github.com/skillbridge/skillbridge/internal/app/repositories"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	pkgAuth "github.com/skillbridge/skillbridge/internal/pkg/auth"
)

// demoPassword is the password of every seeded account
const demoPassword = "skillbridge1"

type demoAccount struct {
	email     string
	firstName string
	lastName  string
	profile   *appModels.SkillProfile
}

// CreateDemoData creates a few demo users with skill profiles so a fresh
// development database has something to search. Existing accounts are left
// untouched; errors are collected rather than aborting the seed.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)

	lgr.Info().Msg("Checking/Creating demo data...")

	hashed, err := pkgAuth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	accounts := []demoAccount{
		{
			email:     "maria.gomez@example.com",
			firstName: "Maria",
			lastName:  "Gomez",
			profile: &appModels.SkillProfile{
				Title:           "Conversational Spanish for Beginners",
				Category:        "Languages",
				Description:     "Native speaker offering relaxed conversational practice.",
				Skills:          []string{"Spanish", "Conversation", "Grammar"},
				ExperienceLevel: appModels.ExperienceExpert,
				TeachingMethods: []string{"online", "in-person"},
				City:            "Barcelona",
				Country:         "Spain",
			},
		},
		{
			email:     "ken.tanaka@example.com",
			firstName: "Ken",
			lastName:  "Tanaka",
			profile: &appModels.SkillProfile{
				Title:           "Jazz Guitar Fundamentals",
				Category:        "Music",
				Description:     "Working musician teaching comping, voicings and improvisation.",
				Skills:          []string{"Guitar", "Jazz", "Music Theory"},
				ExperienceLevel: appModels.ExperienceMaster,
				TeachingMethods: []string{"in-person"},
				City:            "Osaka",
				Country:         "Japan",
			},
		},
		{
			email:     "lena.novak@example.com",
			firstName: "Lena",
			lastName:  "Novak",
			profile: &appModels.SkillProfile{
				Title:           "Sourdough Baking at Home",
				Category:        "Cooking",
				Description:     "From starter maintenance to open-crumb loaves in a home oven.",
				Skills:          []string{"Baking", "Sourdough", "Fermentation"},
				ExperienceLevel: appModels.ExperienceAdvanced,
				TeachingMethods: []string{"online"},
				City:            "Prague",
				Country:         "Czech Republic",
			},
		},
	}

	var finalErr error
	for _, account := range accounts {
		user := &appModels.User{
			Email:     account.email,
			Password:  hashed,
			FirstName: account.firstName,
			LastName:  account.lastName,
		}

		err := userRepo.Create(ctx, user)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		account.profile.UserID = user.ID
		if err := profileRepo.Upsert(ctx, account.profile); err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating demo profile")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
