package repositories

import (
	"context"
	"testing"

	"expense-services/internal/database"
	"expense-services/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestCategoryRepository(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

type CategoryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo CategoryRepositoryInterface
	ctx  context.Context
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.ctx = context.Background()
}

func (s *CategoryRepositorySuite) TestList_ContainsDefaultCategory() {
	categories, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 1)
	s.Equal(models.DefaultCategoryName, categories[0].Name)
}

func (s *CategoryRepositorySuite) TestCreate_AllowsDuplicateNames() {
	first := &models.Category{Name: "Food"}
	second := &models.Category{Name: "Food"}

	s.Require().NoError(s.repo.Create(s.ctx, first))
	s.Require().NoError(s.repo.Create(s.ctx, second))
	s.NotEqual(first.ID, second.ID)

	categories, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 3)
}

func (s *CategoryRepositorySuite) TestCreate_RejectsEmptyName() {
	s.Error(s.repo.Create(s.ctx, &models.Category{Name: " "}))
}

func (s *CategoryRepositorySuite) TestDelete_Unreferenced() {
	category := database.CreateTestCategory(s.T(), s.db, "Travel")

	s.Require().NoError(s.repo.Delete(s.ctx, category.ID))

	categories, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	for _, c := range categories {
		s.NotEqual(category.ID, c.ID)
	}
}

func (s *CategoryRepositorySuite) TestDelete_UnknownIDSucceeds() {
	s.NoError(s.repo.Delete(s.ctx, 424242))
}

func (s *CategoryRepositorySuite) TestDelete_InUse() {
	category := database.CreateTestCategory(s.T(), s.db, "Rent")
	database.CreateTestExpense(s.T(), s.db, 1, category.ID, 900, "2024-01-01")

	err := s.repo.Delete(s.ctx, category.ID)
	s.Equal(ErrCategoryInUse, err)

	categories, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 2)
}
