// Package domain holds DTOs for the categories http and service contracts
package domain

// Category is one taxonomy entry with the number of distinct titles mapped to it
type Category struct {
	Name   string `json:"name"   example:"Operativo"`
	Titles int    `json:"titles" example:"12"`
}

// Catalog is the loaded taxonomy
type Catalog struct {
	Categories []Category `json:"categories"`
	Titles     int        `json:"titles" example:"40"`
}

// LookupInput asks for the category of one job title
type LookupInput struct {
	Title string `query:"title" validate:"required,max=200" example:"Chofer"`
}

// Lookup is the category a title resolves to
type Lookup struct {
	Title      string `json:"title"      example:" CHOFER "`
	Normalized string `json:"normalized" example:"chofer"`
	Category   string `json:"category"   example:"Operativo"`
}

// TitlesInput asks for the titles of one category
type TitlesInput struct {
	Category string `query:"category" validate:"required,max=200" example:"Operativo"`
}

// Titles are the raw job titles mapped to a category
type Titles struct {
	Category string   `json:"category" example:"Operativo"`
	Titles   []string `json:"titles"`
}
