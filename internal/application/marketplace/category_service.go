package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/marketplace"
	"github.com/ikada/backend/internal/domain/shared"
)

// CategoryService maintains the marketplace category tree. All structural
// invariants that need more than one row to check (sibling names, depth,
// cycles, descendant paths) are enforced here on top of fresh repository
// reads; nothing about the tree is cached between requests.
type CategoryService struct {
	categoryRepo marketplace.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo marketplace.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// Create creates a new category, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := s.checkSiblingName(ctx, req.ParentID, req.Name, nil); err != nil {
		return nil, err
	}

	var category *marketplace.Category
	var err error

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}

		category, err = marketplace.NewChildCategory(req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = marketplace.NewCategory(req.Name)
		if err != nil {
			return nil, err
		}
	}

	category.UpdateDisplay(req.Description, req.Icon, req.Color)
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}

	if err = s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category with its parent, direct children and
// product count
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)

	if category.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *category.ParentID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if parent != nil {
			resp.Parent = ToCategoryResponse(parent)
		}
	}

	children, err := s.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Children = make([]CategoryResponse, len(children))
	for i := range children {
		resp.Children[i] = *ToCategoryResponse(&children[i])
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.ProductCount = &count

	return resp, nil
}

// List retrieves categories either as a flat list or as a tree of root
// categories with nested children
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, error) {
	domainFilter := shared.Filter{Filters: make(map[string]interface{})}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	if filter.Hierarchical {
		return s.listTree(ctx, domainFilter, filter.IncludeCount)
	}

	if filter.Level != nil {
		domainFilter.Filters["level"] = *filter.Level
	}
	switch filter.ParentID {
	case "":
	case "null":
		domainFilter.Filters["parent_id"] = nil
	default:
		parentID, err := uuid.Parse(filter.ParentID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PARENT", "Invalid parent id: "+filter.ParentID)
		}
		domainFilter.Filters["parent_id"] = parentID
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
		if filter.IncludeCount {
			count, err := s.categoryRepo.CountProducts(ctx, categories[i].ID)
			if err != nil {
				return nil, err
			}
			responses[i].ProductCount = &count
		}
	}

	return responses, nil
}

// listTree loads roots plus all their descendants and assembles the tree
// in memory from the parent references
func (s *CategoryService) listTree(ctx context.Context, domainFilter shared.Filter, includeCount bool) ([]CategoryResponse, error) {
	roots, err := s.categoryRepo.FindRoots(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(roots))
	for i := range roots {
		node, err := s.buildSubtree(ctx, &roots[i], includeCount)
		if err != nil {
			return nil, err
		}
		responses[i] = *node
	}

	return responses, nil
}

func (s *CategoryService) buildSubtree(ctx context.Context, category *marketplace.Category, includeCount bool) (*CategoryResponse, error) {
	resp := ToCategoryResponse(category)

	if includeCount {
		count, err := s.categoryRepo.CountProducts(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		resp.ProductCount = &count
	}

	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	resp.Children = make([]CategoryResponse, len(children))
	for i := range children {
		child, err := s.buildSubtree(ctx, &children[i], includeCount)
		if err != nil {
			return nil, err
		}
		resp.Children[i] = *child
	}

	return resp, nil
}

// Update renames and/or reparents a category. When the resulting path
// differs from the stored one, every descendant's path and level are
// rewritten in the same transaction as the category itself.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPath := category.Path
	oldLevel := category.Level

	if err := s.checkSiblingName(ctx, req.ParentID, req.Name, &id); err != nil {
		return nil, err
	}

	var parent *marketplace.Category
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, shared.NewDomainError("CIRCULAR_REFERENCE", "A category cannot be its own parent")
		}
		parent, err = s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		if err := s.checkNoCycle(ctx, id, parent); err != nil {
			return nil, err
		}
	}

	newLevel := 0
	if parent != nil {
		newLevel = parent.Level + 1
	}
	if delta := newLevel - oldLevel; delta > 0 {
		if err := s.checkSubtreeDepth(ctx, oldPath, delta); err != nil {
			return nil, err
		}
	}

	if err := category.MoveTo(parent); err != nil {
		return nil, err
	}
	parentPath := ""
	if parent != nil {
		parentPath = parent.Path
	}
	if err := category.Rename(req.Name, parentPath); err != nil {
		return nil, err
	}

	category.UpdateDisplay(req.Description, req.Icon, req.Color)
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}

	if category.Path != oldPath {
		err = s.categoryRepo.SaveWithSubtree(ctx, category, oldPath, category.Level-oldLevel)
	} else {
		err = s.categoryRepo.Save(ctx, category)
	}
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Delete removes a leaf category. Categories with children or with
// products referencing them cannot be deleted; the repository runs the
// emptiness checks and the delete in one transaction.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.DeleteChecked(ctx, id)
}

// checkSiblingName rejects a name already used (case-insensitively) by
// another category under the same parent
func (s *CategoryService) checkSiblingName(ctx context.Context, parentID *uuid.UUID, name string, excludeID *uuid.UUID) error {
	sibling, err := s.categoryRepo.FindSiblingByName(ctx, parentID, name, excludeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if sibling != nil {
		return shared.NewDomainError("DUPLICATE_NAME", "A sibling category with this name already exists")
	}
	return nil
}

// checkSubtreeDepth rejects a move that would push any descendant of the
// subtree rooted at path below the maximum level
func (s *CategoryService) checkSubtreeDepth(ctx context.Context, path string, levelDelta int) error {
	descendants, err := s.categoryRepo.FindDescendants(ctx, path)
	if err != nil {
		return err
	}
	for i := range descendants {
		if descendants[i].Level+levelDelta > marketplace.MaxCategoryLevel {
			return shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Moving this category would push its descendants beyond the maximum depth")
		}
	}
	return nil
}

// checkNoCycle walks from the prospective parent up its ancestor chain and
// fails if the category being moved is encountered. The tree is at most
// three levels deep, so the walk is bounded and the iteration cap only
// guards against corrupted parent pointers.
func (s *CategoryService) checkNoCycle(ctx context.Context, id uuid.UUID, newParent *marketplace.Category) error {
	current := newParent
	for i := 0; i <= marketplace.MaxCategoryLevel+1; i++ {
		if current.ID == id {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Cannot move category under its own descendant")
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		current = next
	}
	return shared.NewDomainError("CIRCULAR_REFERENCE", "Category ancestry exceeds the maximum depth")
}
