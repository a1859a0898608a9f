package postgresadapter

import (
	"time"

	"resourced/resource/ports"
)

type resourceModel struct {
	ResourceID  string    `gorm:"column:resource_id;primaryKey"`
	Code        string    `gorm:"column:code;uniqueIndex;size:50;not null"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Description string    `gorm:"column:description;size:500"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (resourceModel) TableName() string {
	return "resources"
}

func resourceModelFromEntity(item ports.Resource) resourceModel {
	return resourceModel{
		ResourceID:  item.ID,
		Code:        item.Code,
		Name:        item.Name,
		Description: item.Description,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m resourceModel) toEntity() ports.Resource {
	return ports.Resource{
		ID:          m.ResourceID,
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
