package models

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// defaultCategories is the fixed category set created for every new user:
// five expense categories, two income categories and the "Outros" fallback.
var defaultCategories = []Category{
	{Name: "Alimentação", Icon: "🍽️", Type: TransactionTypeExpense, Color: "#F59E0B"},
	{Name: "Transporte", Icon: "🚗", Type: TransactionTypeExpense, Color: "#3B82F6"},
	{Name: "Moradia", Icon: "🏠", Type: TransactionTypeExpense, Color: "#8B5CF6"},
	{Name: "Saúde", Icon: "❤️", Type: TransactionTypeExpense, Color: "#EF4444"},
	{Name: "Lazer", Icon: "🎮", Type: TransactionTypeExpense, Color: "#EC4899"},
	{Name: "Salário", Icon: "💰", Type: TransactionTypeIncome, Color: "#10B981"},
	{Name: "Investimentos", Icon: "📈", Type: TransactionTypeIncome, Color: "#14B8A6"},
	{Name: FallbackCategoryName, Icon: "📦", Type: TransactionTypeExpense, Color: "#6B7280"},
}

// EnsureDefaults creates the default categories and the primary family
// member for a user that has none yet.
//
// It runs on every data fetch but only writes on empty-state detection,
// so it is idempotent.
func EnsureDefaults(db *gorm.DB, userID uuid.UUID, displayName string) error {
	var categoryCount int64
	err := db.Model(&Category{}).Where(&Category{UserID: userID}).Count(&categoryCount).Error
	if err != nil {
		return err
	}

	if categoryCount == 0 {
		log.Info().Str("user", userID.String()).Msg("seeding default categories")

		for _, category := range defaultCategories {
			category.UserID = userID
			if err := db.Create(&category).Error; err != nil {
				return err
			}
		}
	}

	var memberCount int64
	err = db.Model(&FamilyMember{}).Where(&FamilyMember{UserID: userID}).Count(&memberCount).Error
	if err != nil {
		return err
	}

	if memberCount == 0 {
		if displayName == "" {
			displayName = "Você"
		}

		log.Info().Str("user", userID.String()).Msg("seeding primary family member")

		member := FamilyMember{
			UserID: userID,
			Name:   displayName,
			Role:   "Responsável",
			Color:  "#10B981",
		}
		if err := db.Create(&member).Error; err != nil {
			return err
		}
	}

	return nil
}
