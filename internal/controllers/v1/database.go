package v1

import (
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
)

// The view engine works on fully fetched, user scoped lists. These helpers
// are the single place where controllers read them.

func userTransactions(id uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := models.DB.Where(&models.Transaction{UserID: id}).Find(&transactions).Error
	return transactions, err
}

func userCategories(id uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := models.DB.Where(&models.Category{UserID: id}).Find(&categories).Error
	return categories, err
}

func userAccounts(id uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	err := models.DB.Where(&models.Account{UserID: id}).Find(&accounts).Error
	return accounts, err
}

func userMembers(id uuid.UUID) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	err := models.DB.Where(&models.FamilyMember{UserID: id}).Order("created_at ASC").Find(&members).Error
	return members, err
}

func userGoals(id uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	err := models.DB.Where(&models.Goal{UserID: id}).Find(&goals).Error
	return goals, err
}

// firstOwned fetches a resource by ID and verifies it belongs to the user.
// A resource of another user is reported as not found, not as forbidden.
func firstOwned[T any](id uuid.UUID, owner uuid.UUID) (T, error) {
	var resource T
	err := models.DB.Where("user_id = ?", owner).First(&resource, "id = ?", id).Error
	return resource, err
}
