package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/config"
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/observability"
	"github.com/afristar/helpdesk/internal/persistence"
	"github.com/afristar/helpdesk/internal/repository"
)

// Seeds the database with a development admin, a sample customer, a few
// tickets, and the website content entries. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	users := repository.NewUserRepository(pool)
	tickets := repository.NewTicketRepository(pool)
	comments := repository.NewCommentRepository(pool)
	content := repository.NewContentRepository(pool)

	admin := seedUser(ctx, logger, users, cfg.Auth.BcryptCost, domain.User{
		StaffID: "ADMIN01",
		Email:   "john@example.com",
		Name:    "John Doe",
		Role:    domain.RoleAdmin,
	}, "SecurePass123")

	customer := seedUser(ctx, logger, users, cfg.Auth.BcryptCost, domain.User{
		StaffID: "M10256",
		Email:   "elvis@example.com",
		Name:    "Elvis Presley",
		Role:    domain.RoleCustomer,
	}, "password123")

	seedTickets(ctx, logger, tickets, comments, customer, admin)
	seedContent(ctx, logger, content)

	logger.Info("seed complete")
}

func seedUser(ctx context.Context, logger *zap.Logger, users repository.UserRepository, cost int, user domain.User, password string) *domain.User {
	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}
	user.PasswordHash = hash

	if err := users.Upsert(ctx, &user); err != nil {
		logger.Fatal("failed to upsert user", zap.String("staffId", user.StaffID), zap.Error(err))
	}
	logger.Info("seeded user", zap.String("staffId", user.StaffID), zap.String("role", string(user.Role)))
	return &user
}

func seedTickets(ctx context.Context, logger *zap.Logger, tickets repository.TicketRepository, comments repository.CommentRepository, customer, admin *domain.User) {
	existing, _, err := tickets.List(ctx, repository.TicketFilter{AuthorID: &customer.ID, Limit: 1})
	if err != nil {
		logger.Fatal("failed to check existing tickets", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("tickets already seeded, skipping")
		return
	}

	samples := []domain.Ticket{
		{
			Title:       "Cannot access payroll portal",
			Description: "Login to the payroll portal fails with an access denied error.",
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityHigh,
			Category:    domain.TicketCategoryAccess,
			AuthorID:    customer.ID,
		},
		{
			Title:       "Spreadsheet app keeps crashing",
			Description: "The spreadsheet application crashes when opening large files.",
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityMedium,
			Category:    domain.TicketCategorySoftware,
			AuthorID:    customer.ID,
		},
	}

	for i := range samples {
		if err := tickets.Create(ctx, &samples[i]); err != nil {
			logger.Fatal("failed to seed ticket", zap.String("title", samples[i].Title), zap.Error(err))
		}
	}

	seedComments := []domain.Comment{
		{
			TicketID: samples[1].ID,
			AuthorID: admin.ID,
			Content:  "We are looking into the crash reports.",
			Internal: false,
		},
		{
			TicketID: samples[1].ID,
			AuthorID: admin.ID,
			Content:  "Suspect the memory limit on the VDI image, checking with infra.",
			Internal: true,
		},
	}
	for i := range seedComments {
		if err := comments.Create(ctx, &seedComments[i]); err != nil {
			logger.Fatal("failed to seed comment", zap.Error(err))
		}
	}
	logger.Info("seeded tickets", zap.Int("tickets", len(samples)), zap.Int("comments", len(seedComments)))
}

func seedContent(ctx context.Context, logger *zap.Logger, content repository.ContentRepository) {
	describe := func(s string) *string { return &s }
	entries := []domain.ContentEntry{
		{Key: "hero_title", Value: "IT Helpdesk", Description: describe("Landing page headline")},
		{Key: "hero_subtitle", Value: "Report issues and track their resolution.", Description: describe("Landing page subline")},
		{Key: "support_email", Value: "support@example.com", Description: describe("Contact address shown in the footer")},
	}
	for i := range entries {
		if err := content.Upsert(ctx, &entries[i]); err != nil {
			logger.Fatal("failed to seed content", zap.String("key", entries[i].Key), zap.Error(err))
		}
	}
	logger.Info("seeded content", zap.Int("entries", len(entries)))
}
