package catalog

import (
	"fmt"
	"testing"

	"servify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories map[string]models.Category
	created    []models.Category
}

func newFakeCategoryRepo(categories ...models.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: map[string]models.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) GetByID(id string) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with id %s not found", id)
	}
	return &c, nil
}

func (r *fakeCategoryRepo) GetAll() ([]models.Category, error) { return nil, nil }

func (r *fakeCategoryRepo) GetActive() ([]models.Category, error) {
	var active []models.Category
	for _, c := range r.categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (r *fakeCategoryRepo) Create(c *models.Category) error {
	r.created = append(r.created, *c)
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Update(c *models.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) SetActive(id string, active bool) error {
	c, ok := r.categories[id]
	if !ok {
		return fmt.Errorf("category with id %s not found", id)
	}
	c.IsActive = active
	r.categories[id] = c
	return nil
}

type fakeSubcategoryRepo struct {
	subcategories map[string]models.Subcategory
	created       []models.Subcategory
}

func newFakeSubcategoryRepo(subcategories ...models.Subcategory) *fakeSubcategoryRepo {
	repo := &fakeSubcategoryRepo{subcategories: map[string]models.Subcategory{}}
	for _, s := range subcategories {
		repo.subcategories[s.ID] = s
	}
	return repo
}

func (r *fakeSubcategoryRepo) GetByID(id string) (*models.Subcategory, error) {
	s, ok := r.subcategories[id]
	if !ok {
		return nil, fmt.Errorf("subcategory with id %s not found", id)
	}
	return &s, nil
}

func (r *fakeSubcategoryRepo) GetActiveByCategory(categoryID string) ([]models.Subcategory, error) {
	var active []models.Subcategory
	for _, s := range r.subcategories {
		if s.CategoryID == categoryID && s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (r *fakeSubcategoryRepo) GetByCategory(categoryID string) ([]models.Subcategory, error) {
	return r.GetActiveByCategory(categoryID)
}

func (r *fakeSubcategoryRepo) Create(s *models.Subcategory) error {
	r.created = append(r.created, *s)
	r.subcategories[s.ID] = *s
	return nil
}

func (r *fakeSubcategoryRepo) Update(s *models.Subcategory) error {
	if _, ok := r.subcategories[s.ID]; !ok {
		return fmt.Errorf("subcategory with id %s not found", s.ID)
	}
	r.subcategories[s.ID] = *s
	return nil
}

func (r *fakeSubcategoryRepo) SetActive(id string, active bool) error {
	s, ok := r.subcategories[id]
	if !ok {
		return fmt.Errorf("subcategory with id %s not found", id)
	}
	s.IsActive = active
	r.subcategories[id] = s
	return nil
}

func TestCreateSubcategory_RejectsInvalidBandBeforePersistence(t *testing.T) {
	categories := newFakeCategoryRepo(models.Category{ID: "cat1", Name: "Cleaning", IsActive: true})
	subcategories := newFakeSubcategoryRepo()
	svc := &DefaultCatalogService{Categories: categories, Subcategories: subcategories}

	_, err := svc.CreateSubcategory(models.Subcategory{
		CategoryID: "cat1",
		Name:       "Deep cleaning",
		MinPrice:   200,
		MaxPrice:   100,
	})

	require.Error(t, err)
	assert.Equal(t, "Minimum price must be less than maximum price", err.Error())
	assert.Empty(t, subcategories.created, "nothing may reach the store on a failed band check")
}

func TestCreateSubcategory_ValidBandPersists(t *testing.T) {
	categories := newFakeCategoryRepo(models.Category{ID: "cat1", Name: "Cleaning", IsActive: true})
	subcategories := newFakeSubcategoryRepo()
	svc := &DefaultCatalogService{Categories: categories, Subcategories: subcategories}

	created, err := svc.CreateSubcategory(models.Subcategory{
		CategoryID: "cat1",
		Name:       "Deep cleaning",
		MinPrice:   50,
		MaxPrice:   300,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	require.Len(t, subcategories.created, 1)
}

func TestUpdateSubcategory_RejectsInvalidBand(t *testing.T) {
	existing := models.Subcategory{ID: "sub1", CategoryID: "cat1", Name: "Deep cleaning", MinPrice: 50, MaxPrice: 300, IsActive: true}
	subcategories := newFakeSubcategoryRepo(existing)
	svc := &DefaultCatalogService{Subcategories: subcategories}

	existing.MinPrice = 300
	existing.MaxPrice = 300
	err := svc.UpdateSubcategory(existing)

	require.Error(t, err)
	stored, _ := subcategories.GetByID("sub1")
	assert.Equal(t, 50.0, stored.MinPrice, "failed update must not change the store")
}

func TestCreateSubcategory_UnknownCategory(t *testing.T) {
	svc := &DefaultCatalogService{
		Categories:    newFakeCategoryRepo(),
		Subcategories: newFakeSubcategoryRepo(),
	}

	_, err := svc.CreateSubcategory(models.Subcategory{CategoryID: "missing", Name: "x", MinPrice: 1, MaxPrice: 2})
	assert.Error(t, err)
}
