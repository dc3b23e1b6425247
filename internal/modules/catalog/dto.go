package catalog

type CreateCategoryRequest struct {
	ParentID    string `json:"parent_id"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// ReorderRequest moves a single category; the ID comes from the URL.
type ReorderRequest struct {
	CategoryID string `json:"-"`
	NewOrder   int    `json:"new_order"`
}

type BatchReorderRequest struct {
	Updates []ReorderUpdate `json:"updates" binding:"required"`
}

type ReorderUpdate struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

// ReorderResult is the per-category outcome of a batch reorder.
type ReorderResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
