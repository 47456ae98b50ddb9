package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"HiddenLight/internal/cache"
	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
)

// BookmarkQuery selects and pages a user's favorites or read-later list.
type BookmarkQuery struct {
	Type  string
	Read  *bool
	Page  int
	Limit int
}

// BookmarkStats summarizes one user's saved items.
type BookmarkStats struct {
	FavoritesCount int `json:"favoritesCount"`
	ReadLaterCount int `json:"readLaterCount"`
	UnreadCount    int `json:"unreadCount"`
}

// Bookmarks manages favorites and the read-later queue. Listings are cached
// per user for a short TTL and dropped eagerly on every write.
type Bookmarks struct {
	favorites *Records[domain.Bookmark]
	readLater *Records[domain.ReadLaterItem]

	favCache   *cache.Cache[[]domain.Bookmark]
	laterCache *cache.Cache[[]domain.ReadLaterItem]
}

// NewBookmarks builds the bookmark service. listTTL bounds how stale a
// cached listing may get.
func NewBookmarks(store ports.RecordStore, listTTL time.Duration) *Bookmarks {
	favorites := NewRecords[domain.Bookmark](store, "favorite_")
	favorites.Defaults = func(b *domain.Bookmark) {
		if b.Type == "" {
			b.Type = "article"
		}
		if b.AddedAt.IsZero() {
			b.AddedAt = time.Now().UTC()
		}
	}
	favorites.Validate = func(b *domain.Bookmark) error {
		if strings.TrimSpace(b.ItemID) == "" {
			return &domain.ValidationError{Field: "itemId", Reason: "must not be empty"}
		}
		if strings.TrimSpace(b.UserID) == "" {
			return &domain.ValidationError{Field: "userId", Reason: "must not be empty"}
		}
		return nil
	}

	readLater := NewRecords[domain.ReadLaterItem](store, "readlater_")
	readLater.Defaults = func(item *domain.ReadLaterItem) {
		if item.Type == "" {
			item.Type = "article"
		}
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now().UTC()
		}
	}
	readLater.Validate = func(item *domain.ReadLaterItem) error {
		if strings.TrimSpace(item.ItemID) == "" {
			return &domain.ValidationError{Field: "itemId", Reason: "must not be empty"}
		}
		if strings.TrimSpace(item.UserID) == "" {
			return &domain.ValidationError{Field: "userId", Reason: "must not be empty"}
		}
		return nil
	}

	return &Bookmarks{
		favorites:  favorites,
		readLater:  readLater,
		favCache:   cache.New[[]domain.Bookmark]("favorites", listTTL),
		laterCache: cache.New[[]domain.ReadLaterItem]("readlater", listTTL),
	}
}

// AddFavorite saves an item to the user's favorites.
func (s *Bookmarks) AddFavorite(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error) {
	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	if err := s.favorites.Create(ctx, bookmark.ID, bookmark); err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	s.favCache.Purge()
	return bookmark, nil
}

// RemoveFavorite drops a favorite, domain.ErrNotFound when absent.
func (s *Bookmarks) RemoveFavorite(ctx context.Context, id string) error {
	if err := s.favorites.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	s.favCache.Purge()
	return nil
}

// Favorites lists a user's favorites, newest first.
func (s *Bookmarks) Favorites(ctx context.Context, userID string, q BookmarkQuery) (domain.Page[domain.Bookmark], error) {
	items, err := s.userFavorites(ctx, userID)
	if err != nil {
		return domain.Page[domain.Bookmark]{}, err
	}

	if q.Type != "" {
		filtered := items[:0:0]
		for _, b := range items {
			if b.Type == q.Type {
				filtered = append(filtered, b)
			}
		}
		items = filtered
	}
	return paginate(items, q.Page, q.Limit), nil
}

// IsFavorite reports whether the user has favorited the content item.
func (s *Bookmarks) IsFavorite(ctx context.Context, userID, itemID string) (bool, error) {
	items, err := s.userFavorites(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, b := range items {
		if b.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Bookmarks) userFavorites(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	if cached, ok := s.favCache.Get(userID); ok {
		return cached, nil
	}
	all, err := s.favorites.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	items := make([]domain.Bookmark, 0, len(all))
	for _, b := range all {
		if b.UserID == userID {
			items = append(items, b)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	s.favCache.Set(userID, items)
	return items, nil
}

// AddReadLater queues an item for later reading.
func (s *Bookmarks) AddReadLater(ctx context.Context, item *domain.ReadLaterItem) (*domain.ReadLaterItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Read = false
	item.ReadAt = nil
	if err := s.readLater.Create(ctx, item.ID, item); err != nil {
		return nil, fmt.Errorf("add read later: %w", err)
	}
	s.laterCache.Purge()
	return item, nil
}

// RemoveReadLater drops a queued item, domain.ErrNotFound when absent.
func (s *Bookmarks) RemoveReadLater(ctx context.Context, id string) error {
	if err := s.readLater.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove read later: %w", err)
	}
	s.laterCache.Purge()
	return nil
}

// ReadLaterList lists a user's queue, newest first. q.Read narrows to read
// or unread items when set.
func (s *Bookmarks) ReadLaterList(ctx context.Context, userID string, q BookmarkQuery) (domain.Page[domain.ReadLaterItem], error) {
	items, err := s.userReadLater(ctx, userID)
	if err != nil {
		return domain.Page[domain.ReadLaterItem]{}, err
	}

	if q.Read != nil {
		filtered := items[:0:0]
		for _, item := range items {
			if item.Read == *q.Read {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	return paginate(items, q.Page, q.Limit), nil
}

func (s *Bookmarks) userReadLater(ctx context.Context, userID string) ([]domain.ReadLaterItem, error) {
	if cached, ok := s.laterCache.Get(userID); ok {
		return cached, nil
	}
	all, err := s.readLater.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list read later: %w", err)
	}
	items := make([]domain.ReadLaterItem, 0, len(all))
	for _, item := range all {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	s.laterCache.Set(userID, items)
	return items, nil
}

// MarkRead flags a queued item as read and stamps ReadAt.
func (s *Bookmarks) MarkRead(ctx context.Context, id string) (*domain.ReadLaterItem, error) {
	item, err := s.readLater.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark read: %w", err)
	}
	now := time.Now().UTC()
	item.Read = true
	item.ReadAt = &now
	if err := s.readLater.Put(ctx, id, item); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	s.laterCache.Purge()
	return item, nil
}

// ClearRead removes every read item from the user's queue and returns how
// many were removed.
func (s *Bookmarks) ClearRead(ctx context.Context, userID string) (int, error) {
	items, err := s.userReadLater(ctx, userID)
	if err != nil {
		return 0, err
	}
	cleared := 0
	for _, item := range items {
		if !item.Read {
			continue
		}
		if err := s.readLater.Delete(ctx, item.ID); err != nil {
			return cleared, fmt.Errorf("clear read: %w", err)
		}
		cleared++
	}
	if cleared > 0 {
		s.laterCache.Purge()
	}
	return cleared, nil
}

// Stats aggregates the user's favorites and read-later counts.
func (s *Bookmarks) Stats(ctx context.Context, userID string) (BookmarkStats, error) {
	favorites, err := s.userFavorites(ctx, userID)
	if err != nil {
		return BookmarkStats{}, err
	}
	later, err := s.userReadLater(ctx, userID)
	if err != nil {
		return BookmarkStats{}, err
	}
	unread := 0
	for _, item := range later {
		if !item.Read {
			unread++
		}
	}
	return BookmarkStats{
		FavoritesCount: len(favorites),
		ReadLaterCount: len(later),
		UnreadCount:    unread,
	}, nil
}
