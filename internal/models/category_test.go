package models_test

import (
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryValidate() {
	suite.Assert().Nil(models.Category{Name: "Alimentação", Type: models.TransactionTypeExpense}.Validate())

	v := models.Category{Name: "A", Type: "OTHER"}.Validate()
	suite.Assert().Contains(v, "name")
	suite.Assert().Contains(v, "type")
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	_ = suite.createTestCategory(models.Category{Name: "Alimentação"})

	duplicate := models.Category{
		UserID: testUserID,
		Name:   "Alimentação",
		Type:   models.TransactionTypeExpense,
	}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)

	// The same name is fine for another user
	other := models.Category{
		UserID: uuid.New(),
		Name:   "Alimentação",
		Type:   models.TransactionTypeExpense,
	}
	suite.Assert().NoError(models.DB.Create(&other).Error)
}

func (suite *TestSuiteStandard) TestCategoryNames() {
	food := suite.createTestCategory(models.Category{Name: "Alimentação"})
	transport := suite.createTestCategory(models.Category{Name: "Transporte"})

	names := models.Names([]models.Category{food, transport})

	suite.Assert().Equal("Alimentação", names[food.ID])
	suite.Assert().Equal("Transporte", names[transport.ID])
}
