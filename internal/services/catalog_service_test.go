package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/repositories"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(includeInactive bool) ([]models.ProductRecord, error) {
	args := m.Called(includeInactive)
	return args.Get(0).([]models.ProductRecord), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(slug string) (*models.ProductRecord, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductRecord), args.Error(1)
}

func (m *MockProductRepository) Create(record *models.ProductRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockProductRepository) Update(record *models.ProductRecord) (bool, error) {
	args := m.Called(record)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) SetActive(slug string, active bool) (bool, error) {
	args := m.Called(slug, active)
	return args.Bool(0), args.Error(1)
}

func validFields(name string) models.LocalizedFields {
	return models.LocalizedFields{
		Name:     name,
		Summary:  "Summary",
		Overview: "Overview",
		Fabric:   "100% cotton",
		Sizes:    "S-XL",
		Colors:   "White, Blue",
	}
}

func validInput() models.ProductInput {
	return models.ProductInput{
		Category: models.CategoryShirts,
		ZH:       validFields("经典牛津衬衫"),
		EN:       validFields("Classic Oxford Shirt"),
	}
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Classic Oxford Shirt", "classic-oxford-shirt"},
		{"  Tapered   Chino  Pants ", "tapered-chino-pants"},
		{"Shirt #42 (New!)", "shirt-42-new"},
		{"already-slugged", "already-slugged"},
		{"---", "-"},
		{"中文名称", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.NormalizeSlug(tt.name), "input %q", tt.name)
	}
}

func TestCatalogService_CreateDerivesSlugAndDefaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("List", true).Return([]models.ProductRecord{}, nil).Once()
	mockRepo.On("Create", mock.Anything).Return(nil).Once()

	item, err := service.Create(validInput())
	assert.NoError(t, err)
	assert.Equal(t, "classic-oxford-shirt", item.Slug)
	assert.True(t, item.IsActive)
	assert.Equal(t, []string{models.PlaceholderImage}, item.Images)
	assert.Equal(t, item.Images[0], item.Image)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateNormalizesMedia(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("List", true).Return([]models.ProductRecord{}, nil).Once()
	mockRepo.On("Create", mock.Anything).Return(nil).Once()

	input := validInput()
	input.Slug = "  oxford-supplied  "
	input.Images = []string{"  /a.jpg ", "", "   ", "/b.jpg"}
	input.Videos = []string{" /v.mp4 ", ""}

	item, err := service.Create(input)
	assert.NoError(t, err)
	assert.Equal(t, "oxford-supplied", item.Slug)
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, item.Images)
	assert.Equal(t, "/a.jpg", item.Image)
	assert.Equal(t, []string{"/v.mp4"}, item.Videos)
}

func TestCatalogService_CreateSeedsImagesFromLegacyImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("List", true).Return([]models.ProductRecord{}, nil).Once()
	mockRepo.On("Create", mock.Anything).Return(nil).Once()

	input := validInput()
	input.Image = " /legacy.jpg "

	item, err := service.Create(input)
	assert.NoError(t, err)
	assert.Equal(t, []string{"/legacy.jpg"}, item.Images)
	assert.Equal(t, "/legacy.jpg", item.Image)
}

func TestCatalogService_CreateRejectsInvalidCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	input := validInput()
	input.Category = "hats"

	_, err := service.Create(input)
	assert.ErrorIs(t, err, services.ErrInvalidCategory)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_CreateRejectsIncompleteLocalizedFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	input := validInput()
	input.ZH.Fabric = "   " // whitespace-only must not pass

	_, err := service.Create(input)
	assert.ErrorIs(t, err, services.ErrInvalidLocalizedFields)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_CreateRejectsDuplicateSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	existing := []models.ProductRecord{{Slug: "classic-oxford-shirt"}}
	mockRepo.On("List", true).Return(existing, nil).Once()

	_, err := service.Create(validInput())
	assert.ErrorIs(t, err, services.ErrSlugExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_CreateRejectsUnderivableSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	input := validInput()
	input.EN.Name = "中文" // strips to nothing

	_, err := service.Create(input)
	assert.ErrorIs(t, err, services.ErrInvalidSlug)
}

func TestCatalogService_CreateSurfacesStoreLevelDuplicate(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	// Pre-check passes but a concurrent writer won the race; the store
	// rejects at insert and the service passes that through.
	mockRepo.On("List", true).Return([]models.ProductRecord{}, nil).Once()
	mockRepo.On("Create", mock.Anything).Return(repositories.ErrSlugExists).Once()

	_, err := service.Create(validInput())
	assert.ErrorIs(t, err, services.ErrSlugExists)
}

func TestCatalogService_UpdateRequiresSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	input := validInput()
	input.Slug = "   "

	_, err := service.Update(input)
	assert.ErrorIs(t, err, services.ErrInvalidSlug)
}

func TestCatalogService_UpdateNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("Update", mock.Anything).Return(false, nil).Once()

	input := validInput()
	input.Slug = "missing"

	_, err := service.Update(input)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogService_UpdateKeepsSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	var stored *models.ProductRecord
	mockRepo.On("Update", mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*models.ProductRecord)
	}).Return(true, nil).Once()

	input := validInput()
	input.Slug = "classic-oxford-shirt"
	input.EN.Name = "Renamed Product" // must not change the slug

	item, err := service.Update(input)
	assert.NoError(t, err)
	assert.Equal(t, "classic-oxford-shirt", item.Slug)
	assert.Equal(t, "classic-oxford-shirt", stored.Slug)
}

func TestCatalogService_SetActive(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("SetActive", "oxford", false).Return(true, nil).Once()
	assert.NoError(t, service.SetActive("oxford", false))

	mockRepo.On("SetActive", "missing", true).Return(false, nil).Once()
	assert.ErrorIs(t, service.SetActive("missing", true), services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListFallsBackToSeedWhenEmpty(t *testing.T) {
	mockRepo := new(MockProductRepository)
	seed := []models.ProductRecord{
		{Slug: "seeded-active", IsActive: true},
		{Slug: "seeded-inactive", IsActive: false},
	}
	service := services.NewCatalogService(mockRepo, seed)

	mockRepo.On("List", false).Return([]models.ProductRecord{}, nil).Once()
	records, err := service.List(false)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "seeded-active", records[0].Slug)

	mockRepo.On("List", true).Return([]models.ProductRecord{}, nil).Once()
	records, err = service.List(true)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCatalogService_ListPrefersStoredRecords(t *testing.T) {
	mockRepo := new(MockProductRepository)
	seed := []models.ProductRecord{{Slug: "seeded", IsActive: true}}
	service := services.NewCatalogService(mockRepo, seed)

	stored := []models.ProductRecord{{Slug: "stored", IsActive: true}}
	mockRepo.On("List", false).Return(stored, nil).Once()

	records, err := service.List(false)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "stored", records[0].Slug)
}

func TestCatalogService_ListPropagatesStorageErrors(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	storageErr := errors.New("connection refused")
	mockRepo.On("List", true).Return([]models.ProductRecord{}, storageErr).Once()

	_, err := service.List(true)
	assert.ErrorIs(t, err, storageErr)
}

func TestCatalogService_FindBySlugSeedFallback(t *testing.T) {
	mockRepo := new(MockProductRepository)
	seed := []models.ProductRecord{{Slug: "seeded", IsActive: true}}
	service := services.NewCatalogService(mockRepo, seed)

	mockRepo.On("FindBySlug", "seeded").Return(nil, nil).Once()
	mockRepo.On("List", true).Return([]models.ProductRecord{}, nil).Once()

	record, err := service.FindBySlug("seeded")
	assert.NoError(t, err)
	assert.Equal(t, "seeded", record.Slug)

	// Once the store has records the seed is no longer consulted.
	mockRepo.On("FindBySlug", "seeded").Return(nil, nil).Once()
	mockRepo.On("List", true).Return([]models.ProductRecord{{Slug: "other"}}, nil).Once()

	_, err = service.FindBySlug("seeded")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
