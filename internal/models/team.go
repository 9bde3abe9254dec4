package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model
	Name    string       `gorm:"size:255;not null" json:"name"`
	Members []TeamMember `json:"members,omitempty"`
}

// Членство пользователя в команде
type TeamMember struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TeamID uint `gorm:"not null;uniqueIndex:uniq_team_member" json:"teamId"`
	UserID uint `gorm:"not null;uniqueIndex:uniq_team_member" json:"userId"`

	User User `json:"user,omitempty"`
}

// Привязка команды к проекту: доступ к проекту имеют участники
// привязанных команд и админы
type ProjectTeam struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProjectID uint `gorm:"not null;uniqueIndex:uniq_project_team" json:"projectId"`
	TeamID    uint `gorm:"not null;uniqueIndex:uniq_project_team" json:"teamId"`
}
