package domain

import "time"

type Category struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	ParentID     *string   `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Name         string    `json:"name" validate:"required"`
	Slug         string    `json:"slug" gorm:"uniqueIndex" validate:"required"`
	Icon         string    `json:"icon,omitempty"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Children []Category `json:"children,omitempty" gorm:"-"`
}

type City struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}
