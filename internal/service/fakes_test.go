package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"giftly-be/internal/entities"
	"giftly-be/internal/repository"
)

// In-memory stand-ins for the Postgres repositories. They honor the
// same error contracts so the services can be exercised without a
// database, including the conditional-update semantics of Reserve.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, name, email, passwordHash string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return nil, repository.ErrDuplicate
	}
	f.nextID++
	user := &entities.User{
		ID:        f.nextID,
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now(),
	}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeStore backs the wishlist, gift and favorite repositories with one
// shared in-memory dataset.
type fakeStore struct {
	mu             sync.Mutex
	nextWishlistID int64
	nextGiftID     int64
	wishlists      map[int64]*entities.Wishlist
	gifts          map[int64]*entities.Gift
	favorites      map[[2]int64]bool // [wishlistID, userID]
	ownerNames     map[int64]string  // userID -> display name

	failGiftName string // inserting a gift with this name fails the whole call
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wishlists:  make(map[int64]*entities.Wishlist),
		gifts:      make(map[int64]*entities.Gift),
		favorites:  make(map[[2]int64]bool),
		ownerNames: make(map[int64]string),
	}
}

var errFakeInsert = errors.New("insert failed")

func (f *fakeStore) CreateWithGifts(_ context.Context, name string, userID int64, shareToken string, gifts []entities.Gift) (*entities.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// All-or-nothing, mirroring the transactional repository.
	for _, g := range gifts {
		if g.Name == f.failGiftName && f.failGiftName != "" {
			return nil, errFakeInsert
		}
	}

	f.nextWishlistID++
	w := &entities.Wishlist{
		ID:          f.nextWishlistID,
		Name:        name,
		UserID:      userID,
		ShareToken:  shareToken,
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
	f.wishlists[w.ID] = w
	for _, g := range gifts {
		f.insertGiftLocked(w.ID, g)
	}
	return w, nil
}

func (f *fakeStore) insertGiftLocked(wishlistID int64, g entities.Gift) *entities.Gift {
	f.nextGiftID++
	stored := g
	stored.ID = f.nextGiftID
	stored.WishlistID = wishlistID
	stored.IsReserved = false
	stored.ReserveMessage = nil
	f.gifts[stored.ID] = &stored
	return &stored
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (*entities.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wishlists[id]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindPublishedByToken(_ context.Context, token string) (*entities.Wishlist, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wishlists {
		if w.ShareToken == token && w.IsPublished {
			copied := *w
			return &copied, f.ownerNames[w.UserID], nil
		}
	}
	return nil, "", repository.ErrNotFound
}

func (f *fakeStore) SyncGifts(_ context.Context, wishlistID int64, name string, gifts []entities.Gift) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, ok := f.wishlists[wishlistID]
	if !ok {
		return repository.ErrNotFound
	}

	// Validate kept ids before mutating anything.
	for _, g := range gifts {
		if g.ID > 0 {
			stored, ok := f.gifts[g.ID]
			if !ok || stored.WishlistID != wishlistID {
				return repository.ErrUnknownGift
			}
		}
	}

	w.Name = name

	kept := make(map[int64]bool)
	for _, g := range gifts {
		if g.ID > 0 {
			kept[g.ID] = true
		}
	}
	for id, stored := range f.gifts {
		if stored.WishlistID == wishlistID && !kept[id] {
			delete(f.gifts, id)
		}
	}

	for _, g := range gifts {
		if g.ID > 0 {
			stored := f.gifts[g.ID]
			stored.Name = g.Name
			stored.Price = g.Price
			stored.Priority = g.Priority
			stored.Link = g.Link
			stored.Notes = g.Notes
			stored.Image = g.Image
		} else {
			f.insertGiftLocked(wishlistID, g)
		}
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wishlists[id]
	if !ok || w.UserID != userID {
		return 0, repository.ErrNotFound
	}
	var removed int64
	for giftID, g := range f.gifts {
		if g.WishlistID == id {
			delete(f.gifts, giftID)
			removed++
		}
	}
	for pair := range f.favorites {
		if pair[0] == id {
			delete(f.favorites, pair)
		}
	}
	delete(f.wishlists, id)
	return removed, nil
}

func (f *fakeStore) GetGifts(_ context.Context, wishlistID int64) ([]entities.Gift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var gifts []entities.Gift
	for _, g := range f.gifts {
		if g.WishlistID == wishlistID {
			gifts = append(gifts, *g)
		}
	}
	return gifts, nil
}

func (f *fakeStore) GetOwned(_ context.Context, userID int64) ([]*entities.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Wishlist
	for _, w := range f.wishlists {
		if w.UserID == userID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) GetFavorited(_ context.Context, userID int64) ([]*entities.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Wishlist
	for pair := range f.favorites {
		if pair[1] == userID {
			if w, ok := f.wishlists[pair[0]]; ok {
				copied := *w
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) GetShareToken(_ context.Context, wishlistID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wishlists[wishlistID]; ok {
		return w.ShareToken, nil
	}
	return "", repository.ErrNotFound
}

// Reserve mimics the conditional UPDATE: the check and the set happen
// under one lock, so concurrent attempts race safely.
func (f *fakeStore) Reserve(_ context.Context, giftID int64, message *string) (*entities.Gift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gifts[giftID]
	if !ok || g.IsReserved {
		return nil, repository.ErrGiftUnavailable
	}
	g.IsReserved = true
	g.ReserveMessage = message
	copied := *g
	return &copied, nil
}

func (f *fakeStore) Add(_ context.Context, wishlistID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wishlists[wishlistID]; !ok {
		return repository.ErrForeignKey
	}
	pair := [2]int64{wishlistID, userID}
	if f.favorites[pair] {
		return repository.ErrDuplicate
	}
	f.favorites[pair] = true
	return nil
}

func (f *fakeStore) Remove(_ context.Context, wishlistID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pair := [2]int64{wishlistID, userID}
	if !f.favorites[pair] {
		return repository.ErrNotFound
	}
	delete(f.favorites, pair)
	return nil
}

func (f *fakeStore) Exists(_ context.Context, wishlistID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.favorites[[2]int64{wishlistID, userID}], nil
}

// fakeCache records values in a map so cache hits and invalidations can
// be asserted on.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}
