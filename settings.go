package main

import (
	"encoding/json"
	"log/slog"

	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// Settings are the demo preferences kept between runs.
type Settings struct {
	Debug     bool    `json:"debug"`
	SFXVolume float64 `json:"sfxVolume"`
}

func defaultSettings() Settings {
	return Settings{SFXVolume: 0.8}
}

// SettingsStore persists Settings with gdata. A store that failed to open
// hands out defaults and drops saves.
type SettingsStore struct {
	manager *gdata.Manager
	logger  *slog.Logger
}

func OpenSettings(logger *slog.Logger) *SettingsStore {
	s := &SettingsStore{logger: logger}
	m, err := gdata.Open(gdata.Config{AppName: "warden"})
	if err != nil {
		logger.Warn("settings persistence unavailable", "err", err)
		return s
	}
	s.manager = m
	return s
}

func (s *SettingsStore) Load() Settings {
	settings := defaultSettings()
	if s.manager == nil {
		return settings
	}
	data, err := s.manager.LoadItem(settingsKey)
	if err != nil {
		s.logger.Warn("could not load settings", "err", err)
		return settings
	}
	if len(data) == 0 {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("could not parse saved settings", "err", err)
		return defaultSettings()
	}
	return settings
}

func (s *SettingsStore) Save(settings Settings) {
	if s.manager == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		s.logger.Warn("could not serialize settings", "err", err)
		return
	}
	if err := s.manager.SaveItem(settingsKey, data); err != nil {
		s.logger.Warn("could not save settings", "err", err)
	}
}
