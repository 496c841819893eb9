package repository

import (
	"contentgenius/internal/app/ds"
)

func (r *Repository) GetActiveTemplates() ([]ds.ContentTemplate, error) {
	var templates []ds.ContentTemplate
	err := r.db.Where("is_active = ?", true).Order("id").Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *Repository) GetActiveTemplate(contentType string) (*ds.ContentTemplate, error) {
	var templates []ds.ContentTemplate
	err := r.db.Where("content_type = ? AND is_active = ?", contentType, true).Limit(1).Find(&templates).Error
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrTemplateNotFound
	}
	return &templates[0], nil
}
