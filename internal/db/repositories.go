package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Episodes *EpisodeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Episodes: NewEpisodeRepository(database),
	}
}
