package models

import "time"

// Faq is a question and answer shown on the storefront.
type Faq struct {
	Model
	Title   string `gorm:"size:255;not null" json:"title" validate:"required"`
	Content string `gorm:"type:text" json:"content" validate:"required"`
	Status  bool   `json:"status"`
}

// Service is a service offering with an optional image.
type Service struct {
	Model
	Title        string `gorm:"size:255;not null" json:"title" validate:"required"`
	Content      string `gorm:"type:text" json:"content" validate:"required"`
	ServiceImage string `gorm:"size:255" json:"serviceImage"`
	Status       bool   `json:"status"`
}

// Blog is a blog post.
type Blog struct {
	Model
	Title           string        `gorm:"size:255;not null" json:"title" validate:"required"`
	SubTitle        string        `gorm:"size:255" json:"subTitle" validate:"required"`
	Slug            string        `gorm:"size:255;index" json:"slug"`
	Content         string        `gorm:"type:text" json:"content" validate:"required"`
	ButtonText      string        `gorm:"size:100" json:"buttonText" validate:"required"`
	PublishDate     time.Time     `json:"publishDate" validate:"required"`
	BlogImage       string        `gorm:"size:255" json:"blogImage"`
	BlogCategoryID  uint64        `gorm:"index" json:"blog_category_id" validate:"required"`
	BlogCategory    *BlogCategory `gorm:"foreignKey:BlogCategoryID" json:"blog_category,omitempty"`
	BlogTagIDs      []uint64      `gorm:"serializer:json;type:text" json:"blog_tag_id"`
	MetaTitle       string        `gorm:"size:255" json:"meta_title"`
	MetaKeyword     string        `gorm:"size:255" json:"meta_keyword"`
	MetaDescription string        `gorm:"size:500" json:"meta_description"`
	Published       bool          `json:"published"`
}
