package config

import "path/filepath"

type StorageConfig interface {
	GetStoragePath() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStoragePath() string {
	return GetEnv("CRM_STORAGE_PATH", filepath.Join(EnvVars{}.GetDataFolder(), "crm.db"))
}
