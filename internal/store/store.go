package store

import (
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OwnedBadge marks one badge as personally owned.
type OwnedBadge struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	BadgeID string `gorm:"uniqueIndex"`
}

// BadgeImage caches one generated image per badge. Rows are write-once.
type BadgeImage struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	BadgeID string `gorm:"uniqueIndex"`
	DataURI string `gorm:"type:text"`
}

// Preference is a generic string key/value setting.
type Preference struct {
	ID        uint `gorm:"primarykey"`
	UpdatedAt time.Time

	Key   string `gorm:"uniqueIndex"`
	Value string
}

const themeKey = "theme"

// DefaultTheme is used when no preference has been saved.
const DefaultTheme = "dark"

// Store is the user's overlay state on top of the static catalog: the
// owned set, the generated-image cache, and the theme preference. All
// state is held in memory and written through to sqlite on every
// mutation; a failing write degrades to memory-only for the session
// rather than surfacing an error.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger

	mu         sync.Mutex
	owned      map[string]bool
	images     map[string]string
	theme      string
	themeSaved bool
}

// New opens (or creates) the overlay database and loads the current
// state. If the database cannot be opened the store still works,
// memory-only, so a broken disk never takes the app down.
func New(dbFilePath string, zapLogger *zap.Logger) (*Store, error) {
	s := &Store{
		logger: zapLogger,
		owned:  make(map[string]bool),
		images: make(map[string]string),
		theme:  DefaultTheme,
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		zapLogger.Warn("failed to open state database, continuing memory-only", zap.Error(err))
		return s, nil
	}

	if err := db.AutoMigrate(&OwnedBadge{}, &BadgeImage{}, &Preference{}); err != nil {
		zapLogger.Warn("failed to migrate state database, continuing memory-only", zap.Error(err))
		return s, nil
	}

	s.db = db
	s.load()
	return s, nil
}

// load reads the full overlay once at startup. Corrupt or missing rows
// fall back to defaults.
func (s *Store) load() {
	var owned []OwnedBadge
	if err := s.db.Find(&owned).Error; err != nil {
		s.logger.Warn("failed to load owned badges", zap.Error(err))
	} else {
		for _, o := range owned {
			s.owned[o.BadgeID] = true
		}
	}

	var images []BadgeImage
	if err := s.db.Find(&images).Error; err != nil {
		s.logger.Warn("failed to load image cache", zap.Error(err))
	} else {
		for _, img := range images {
			s.images[img.BadgeID] = img.DataURI
		}
	}

	var pref Preference
	err := s.db.Where("key = ?", themeKey).First(&pref).Error
	switch {
	case err == nil && pref.Value != "":
		s.theme = pref.Value
		s.themeSaved = true
	case err != nil && err != gorm.ErrRecordNotFound:
		s.logger.Warn("failed to load theme preference", zap.Error(err))
	}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Toggle flips ownership of a badge and reports the new state.
func (s *Store) Toggle(badgeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owned[badgeID] {
		delete(s.owned, badgeID)
		if s.db != nil {
			if err := s.db.Where("badge_id = ?", badgeID).Delete(&OwnedBadge{}).Error; err != nil {
				s.logger.Warn("failed to persist ownership change", zap.String("badge", badgeID), zap.Error(err))
			}
		}
		return false
	}

	s.owned[badgeID] = true
	if s.db != nil {
		if err := s.db.Create(&OwnedBadge{BadgeID: badgeID}).Error; err != nil {
			s.logger.Warn("failed to persist ownership change", zap.String("badge", badgeID), zap.Error(err))
		}
	}
	return true
}

// IsOwned reports whether a badge is marked as owned.
func (s *Store) IsOwned(badgeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owned[badgeID]
}

// Owned returns a copy of the owned set.
func (s *Store) Owned() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]bool, len(s.owned))
	for id := range s.owned {
		result[id] = true
	}
	return result
}

// Image returns the cached generated image for a badge, if any.
func (s *Store) Image(badgeID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uri, ok := s.images[badgeID]
	return uri, ok
}

// PutImage caches a generated image for a badge. The cache is write-once:
// an existing entry is never overwritten.
func (s *Store) PutImage(badgeID, dataURI string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.images[badgeID]; exists {
		return
	}
	s.images[badgeID] = dataURI

	if s.db != nil {
		if err := s.db.Create(&BadgeImage{BadgeID: badgeID, DataURI: dataURI}).Error; err != nil {
			s.logger.Warn("failed to persist generated image", zap.String("badge", badgeID), zap.Error(err))
		}
	}
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SeedTheme sets the session's starting theme for stores that have no
// saved preference, without persisting it. Config and environment feed
// the first session through here; only an explicit SetTheme sticks.
func (s *Store) SeedTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.themeSaved || theme == "" {
		return
	}
	s.theme = theme
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	s.themeSaved = true
	if s.db != nil {
		pref := Preference{Key: themeKey, Value: theme}
		err := s.db.Where("key = ?", themeKey).
			Assign(Preference{Value: theme}).
			FirstOrCreate(&pref).Error
		if err != nil {
			s.logger.Warn("failed to persist theme", zap.Error(err))
		}
	}
}
