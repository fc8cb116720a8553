package storage

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

// AppName names the save-data directory.
const AppName = "crazy-tower"

// SaveData keeps integers as items in the platform's save-data directory.
type SaveData struct {
	m *gdata.Manager
}

type savedInt struct {
	Value int `json:"value"`
}

// OpenSaveData opens the save-data directory for appName.
func OpenSaveData(appName string) (*SaveData, error) {
	if appName == "" {
		appName = AppName
	}
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open save data: %w", err)
	}
	return &SaveData{m: m}, nil
}

// GetInt loads an item. A missing or empty item returns ok == false.
func (s *SaveData) GetInt(key string) (int, bool, error) {
	data, err := s.m.LoadItem(key)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	if len(data) == 0 {
		return 0, false, nil
	}

	var v savedInt
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false, fmt.Errorf("storage: cannot parse %q: %w", key, err)
	}
	return v.Value, true, nil
}

// SetInt saves an item, replacing any previous value.
func (s *SaveData) SetInt(key string, value int) error {
	data, err := json.Marshal(savedInt{Value: value})
	if err != nil {
		return fmt.Errorf("storage: cannot encode %q: %w", key, err)
	}
	if err := s.m.SaveItem(key, data); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

// DeleteKey clears an item.
func (s *SaveData) DeleteKey(key string) error {
	if err := s.m.SaveItem(key, nil); err != nil {
		return fmt.Errorf("storage: cannot clear %q: %w", key, err)
	}
	return nil
}
